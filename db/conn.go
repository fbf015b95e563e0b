// Package db sets up the database connection used by the whole app
package db

import (
	"fmt"

	"bitwise74/contacts-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.driver") {
	case "sqlite":
		dialector = sqlite.Open(viper.GetString("db.path"))
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			viper.GetString("db.host"),
			viper.GetString("db.user"),
			viper.GetString("db.password"),
			viper.GetString("db.name"),
			viper.GetInt("db.port"),
			viper.GetString("db.sslmode"),
		)
		dialector = postgres.Open(dsn)
	}

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which is how races on username/email registration are caught
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Contact{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
