package database

import (
	"fmt"

	"marketplace-app/internal/domain/designers"
	"marketplace-app/internal/domain/products"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/domain/videos"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates all domain models. The caller
// owns the handle and closes it on shutdown.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// required for gen_random_uuid() defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},

		// marketplace
		&designers.Designer{},
		&designers.UpdateRequest{},
		&products.Category{},
		&products.Product{},
		&videos.Video{},
		&videos.Comment{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
