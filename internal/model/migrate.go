package model

import "gorm.io/gorm"

// AutoMigrate migrates every entity of the record keeper.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Message{},
	)
}
