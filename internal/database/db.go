package database

import (
	"log"

	"electromart-backend/internal/config"
	"electromart-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// Migrate runs AutoMigrate for every model. Tests call it against their own
// sqlite databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Project{},
		&models.Scheme{},
		&models.Slide{},
		&models.StockEntry{},
		&models.Bill{},
		&models.BillItem{},
		&models.AuditLog{},
	)
}
