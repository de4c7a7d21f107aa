package database

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"stocks-api/models"
)

var (
	ErrInvalidBatchSize = fmt.Errorf("invalid batch size")
	ErrInvalidData      = fmt.Errorf("invalid data, expected slice")
)

// AutoMigrate creates or updates the schema from the GORM models. Production
// deployments use the versioned migrations in Migrate instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AppUser{},
		&models.Stock{},
		&models.Comment{},
		&models.Portfolio{},
	)
}

// CreateInBatches inserts a slice of records in chunks of batchSize inside a
// single transaction. Either every chunk is stored or none is.
func CreateInBatches(ctx context.Context, db *gorm.DB, data interface{}, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}

	slice := reflect.ValueOf(data)
	if slice.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	total := slice.Len()
	if total == 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < total; i += batchSize {
			end := i + batchSize
			if end > total {
				end = total
			}

			chunk := slice.Slice(i, end).Interface()
			if err := tx.Create(chunk).Error; err != nil {
				return fmt.Errorf("batch insert failed: %w", err)
			}
		}
		return nil
	})
}
