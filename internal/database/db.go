package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobtrackr/backend/internal/models"
)

func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connection established")

	log.Println("Running migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Job{}); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}
