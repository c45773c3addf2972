package model

import "time"

// customers
type Customer struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`
	Email    string `gorm:"type:varchar(120)" json:"email"`
	Company  string `gorm:"type:varchar(100)" json:"company"`
	Position string `gorm:"type:varchar(100)" json:"position"`

	Memo string `gorm:"type:text" json:"memo"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
