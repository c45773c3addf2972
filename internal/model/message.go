package model

import "time"

// messages — append-only chat log. Rows are never updated or deleted.
type Message struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Sender  string `gorm:"type:varchar(100);not null" json:"sender"`
	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
