package model

type Contact struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string  `gorm:"size:100;not null" json:"first_name"`
	LastName  string  `gorm:"size:100;not null" json:"last_name"`
	Email     string  `gorm:"size:50" json:"email"`
	Phone     string  `gorm:"size:30" json:"phone"`
	Date      Date    `gorm:"not null" json:"date"`
	Notes     *string `gorm:"size:255" json:"notes"`
	UserID    uint    `gorm:"index;not null" json:"-"`
}
