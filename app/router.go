// Package app wires the endpoints, middleware and shared dependencies
// into a runnable router
package app

import (
	"fmt"
	"time"

	"bitwise74/contacts-api/app/auth"
	"bitwise74/contacts-api/app/contact"
	"bitwise74/contacts-api/app/root"
	"bitwise74/contacts-api/app/user"
	"bitwise74/contacts-api/db"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/middleware"
	"bitwise74/contacts-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type App struct {
	Router *gin.Engine
	Deps   *internal.Deps
}

func NewRouter() (*App, error) {
	makeLogger()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	avatars, err := service.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	jobQueue := service.NewJobQueue(service.NewMailer())
	jobQueue.StartWorkerPool()

	d := &internal.Deps{
		DB:       conn,
		Argon:    security.New(),
		Tokens:   security.NewTokenMaker(),
		Avatars:  avatars,
		JobQueue: jobQueue,
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	setupRoutes(router, d)

	return &App{Router: router, Deps: d}, nil
}

// setupRoutes registers every endpoint onto the router. Split out from
// NewRouter so tests can mount the same routes on their own deps.
func setupRoutes(router *gin.Engine, d *internal.Deps) {
	jwt := middleware.NewAuthMiddleware(d.DB, d.Tokens)
	meLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerMinute: viper.GetInt("security.me_rate_limit"),
	})

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate			-> Validates a bearer token
		m.GET("/validate", jwt, root.Validate)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 		-> Registers a new user, mails a confirmation link
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login 		-> Logs in a confirmed user and returns a bearer token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/confirmed_email/:token	-> Link-click email confirmation
		a.GET("/confirmed_email/:token", func(c *gin.Context) { auth.Confirm(c, d) })

		// POST /api/auth/confirm_email		-> Re-sends the confirmation mail
		a.POST("/confirm_email", func(c *gin.Context) { auth.Resend(c, d) })
	}

	u := m.Group("/users", jwt)
	{
		// GET /api/users/me 			-> Returns the caller's user record
		u.GET("/me", meLimiter, func(c *gin.Context) { user.Me(c, d) })

		// PATCH /api/users/avatar 		-> Uploads a new avatar for the caller
		u.PATCH("/avatar", middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { user.Avatar(c, d) })
	}

	ct := m.Group("/contacts", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/contacts 			-> Lists the caller's contacts with optional filters
		ct.GET("", func(c *gin.Context) { contact.List(c, d) })

		// GET /api/contacts/birthdays 		-> Contacts with a birthday in the next 7 days
		ct.GET("/birthdays", func(c *gin.Context) { contact.Birthdays(c, d) })

		// POST /api/contacts 			-> Creates a contact owned by the caller
		ct.POST("", func(c *gin.Context) { contact.Create(c, d) })

		// PUT /api/contacts/:id 		-> Overwrites an owned contact
		ct.PUT("/:id", func(c *gin.Context) { contact.Update(c, d) })

		// DELETE /api/contacts/:id 		-> Deletes an owned contact
		ct.DELETE("/:id", func(c *gin.Context) { contact.Delete(c, d) })
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	var level zapcore.Level
	if err := level.Set(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
