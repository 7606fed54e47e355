package database

import (
	"log"
	"nutricoach/internal/models"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.HealthProfile{},
		&models.BMIRecord{},
		&models.DietPlan{},
		&models.Task{},
	}
}

func MigrateDatabase() error {
	return Migrate(DB)
}

func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
