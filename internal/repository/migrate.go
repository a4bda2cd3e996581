package repository

import "gorm.io/gorm"

// Migrate creates or updates every table this package owns. cmd/seed and the
// test suites call it; production schemas are managed the same way for now.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&brandModel{},
		&productModel{},
		&categoryModel{},
		&favoriteModel{},
		&contactMessageModel{},
		&refreshTokenModel{},
		&uploadModel{},
	)
}
