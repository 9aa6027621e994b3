package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&PromoCode{},
		&PromoRedemption{},
		&Transaction{},
		&GeneratedImage{},
		&GalleryItem{},
		&PhotoshootExample{},
		&SecurityLog{},
	); err != nil {
		return err
	}

	// Case-insensitive unique email for non-soft-deleted users.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email))) WHERE deleted_at IS NULL",
	).Error
}
