package migration

import (
	"EatBefore/entities"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the tables used by the postgres key-value driver.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.KVEntry{}); err != nil {
		return fmt.Errorf("error migrating kv entry table: %w", err)
	}

	return nil
}
