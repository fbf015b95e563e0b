package contact

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestRouter mounts the contact handlers behind a stand-in auth
// middleware that takes the acting user from the X-Test-User header.
func newTestRouter(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	d := &internal.Deps{DB: db}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("requestID", "test")

		userID := uint(1)
		if v := c.GetHeader("X-Test-User"); v != "" {
			parsed, err := strconv.ParseUint(v, 10, 32)
			require.NoError(t, err)
			userID = uint(parsed)
		}
		c.Set("userID", userID)

		c.Next()
	})

	router.GET("/contacts", func(c *gin.Context) { List(c, d) })
	router.GET("/contacts/birthdays", func(c *gin.Context) { Birthdays(c, d) })
	router.POST("/contacts", func(c *gin.Context) { Create(c, d) })
	router.PUT("/contacts/:id", func(c *gin.Context) { Update(c, d) })
	router.DELETE("/contacts/:id", func(c *gin.Context) { Delete(c, d) })

	return router, d
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndDateRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/contacts",
		`{"first_name":"Bob","last_name":"Lee","email":"bob@y.com","phone":"555","date":"2024-03-15"}`, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-03-15"`)
	assert.Contains(t, w.Body.String(), `"id":1`)

	w = doJSON(router, http.MethodGet, "/contacts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-03-15"`)
}

func TestCreateRejectsBadPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"last_name":"Lee","email":"bob@y.com","phone":"555","date":"2024-03-15"}`},
		{"bad date", `{"first_name":"Bob","last_name":"Lee","email":"bob@y.com","phone":"555","date":"15.03.2024"}`},
		{"bad email", `{"first_name":"Bob","last_name":"Lee","email":"nope","phone":"555","date":"2024-03-15"}`},
		{"long phone", `{"first_name":"Bob","last_name":"Lee","email":"bob@y.com","phone":"` + strings.Repeat("5", 31) + `","date":"2024-03-15"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/contacts", tt.body, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), "errors")
		})
	}
}

func TestListFiltersAreCaseInsensitive(t *testing.T) {
	router, d := newTestRouter(t)

	seed := []model.Contact{
		{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "1", Date: mustDate(t, "1990-01-01"), UserID: 1},
		{FirstName: "Alice", LastName: "Smith", Email: "alice@y.com", Phone: "2", Date: mustDate(t, "1991-02-02"), UserID: 1},
	}
	for i := range seed {
		require.NoError(t, d.DB.Create(&seed[i]).Error)
	}

	w := doJSON(router, http.MethodGet, "/contacts?first_name=BOB", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@y.com")
	assert.NotContains(t, w.Body.String(), "alice@y.com")

	w = doJSON(router, http.MethodGet, "/contacts?email=ALICE@Y.COM", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@y.com")
	assert.NotContains(t, w.Body.String(), "bob@y.com")
}

func TestListRejectsOutOfRangePagination(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/contacts?limit=5",
		"/contacts?limit=500",
		"/contacts?limit=abc",
		"/contacts?skip=-1",
	} {
		w := doJSON(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "path %s", path)
	}
}

func TestListScopedToOwner(t *testing.T) {
	router, d := newTestRouter(t)

	mine := model.Contact{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "1", Date: mustDate(t, "1990-01-01"), UserID: 1}
	theirs := model.Contact{FirstName: "Eve", LastName: "Dropper", Email: "eve@z.com", Phone: "2", Date: mustDate(t, "1992-03-03"), UserID: 2}
	require.NoError(t, d.DB.Create(&mine).Error)
	require.NoError(t, d.DB.Create(&theirs).Error)

	w := doJSON(router, http.MethodGet, "/contacts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@y.com")
	assert.NotContains(t, w.Body.String(), "eve@z.com")
}

func TestUpdate(t *testing.T) {
	router, d := newTestRouter(t)

	contact := model.Contact{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "555", Date: mustDate(t, "1990-01-01"), UserID: 1}
	require.NoError(t, d.DB.Create(&contact).Error)

	body := fmt.Sprintf(`{"id":%d,"first_name":"Robert","last_name":"Lee","email":"bob@y.com","phone":"555","date":"1990-01-01"}`, contact.ID)

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/contacts/%d", contact.ID), body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Robert")

	var persisted model.Contact
	require.NoError(t, d.DB.First(&persisted, contact.ID).Error)
	assert.Equal(t, "Robert", persisted.FirstName)
	assert.Equal(t, uint(1), persisted.UserID)
}

func TestUpdateIDMismatch(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPut, "/contacts/1",
		`{"id":2,"first_name":"Bob","last_name":"Lee","email":"bob@y.com","phone":"555","date":"1990-01-01"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mismatch")
}

func TestUpdateByAnotherUserIsNotFound(t *testing.T) {
	router, d := newTestRouter(t)

	contact := model.Contact{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "555", Date: mustDate(t, "1990-01-01"), UserID: 1}
	require.NoError(t, d.DB.Create(&contact).Error)

	body := fmt.Sprintf(`{"id":%d,"first_name":"Hacked","last_name":"Lee","email":"bob@y.com","phone":"555","date":"1990-01-01"}`, contact.ID)

	w := doJSON(router, http.MethodPut, fmt.Sprintf("/contacts/%d", contact.ID), body,
		map[string]string{"X-Test-User": "2"})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var persisted model.Contact
	require.NoError(t, d.DB.First(&persisted, contact.ID).Error)
	assert.Equal(t, "Bob", persisted.FirstName)
}

func TestDeleteReturnsLastState(t *testing.T) {
	router, d := newTestRouter(t)

	contact := model.Contact{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "555", Date: mustDate(t, "1990-01-01"), UserID: 1}
	require.NoError(t, d.DB.Create(&contact).Error)

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/contacts/%d", contact.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@y.com")

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/contacts/%d", contact.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteByAnotherUserIsNotFound(t *testing.T) {
	router, d := newTestRouter(t)

	contact := model.Contact{FirstName: "Bob", LastName: "Lee", Email: "bob@y.com", Phone: "555", Date: mustDate(t, "1990-01-01"), UserID: 1}
	require.NoError(t, d.DB.Create(&contact).Error)

	w := doJSON(router, http.MethodDelete, fmt.Sprintf("/contacts/%d", contact.ID), "",
		map[string]string{"X-Test-User": "2"})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, d.DB.Model(&model.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBirthdaysWindow(t *testing.T) {
	router, d := newTestRouter(t)

	soon := model.NewDate(time.Now().AddDate(0, 0, 3))
	farOff := model.NewDate(time.Now().AddDate(0, 0, 30))

	require.NoError(t, d.DB.Create(&model.Contact{
		FirstName: "Soon", LastName: "Person", Email: "soon@y.com", Phone: "1", Date: soon, UserID: 1,
	}).Error)
	require.NoError(t, d.DB.Create(&model.Contact{
		FirstName: "Later", LastName: "Person", Email: "later@y.com", Phone: "2", Date: farOff, UserID: 1,
	}).Error)

	w := doJSON(router, http.MethodGet, "/contacts/birthdays", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "soon@y.com")
	assert.NotContains(t, w.Body.String(), "later@y.com")
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}
