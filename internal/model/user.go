// Package model defines database models
package model

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	Avatar         *string   `json:"avatar"`
	Confirmed      bool      `gorm:"default:false" json:"confirmed"`

	Contacts []Contact `gorm:"foreignKey:UserID" json:"-"`
}
