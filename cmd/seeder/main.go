package main

import (
	"log"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/seeds"
)

// Loads the static reference data: achievement catalog, curriculum days and
// phrases. Safe to run repeatedly; existing rows are left alone.
func main() {
	config.LoadConfig()
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.Day{},
		&models.Achievement{},
		&models.MotivationalPhrase{},
		&models.RecreationPhrase{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeds.SeedAchievements()
	seeds.SeedDays()
	seeds.SeedPhrases()

	log.Println("Seeding complete")
}
