package seeds

import (
	"fmt"
	"log"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm/clause"
)

// SeedPhrases loads placeholder motivational and recreation phrases, one
// motivational phrase per curriculum day.
func SeedPhrases() {
	log.Println("Seeding phrases...")

	motivational := make([]models.MotivationalPhrase, 0, models.CurriculumLength)
	for n := 1; n <= models.CurriculumLength; n++ {
		motivational = append(motivational, models.MotivationalPhrase{
			Position: n,
			Text:     fmt.Sprintf("Day %d. Keep going!", n),
		})
	}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&motivational).Error; err != nil {
		log.Printf("Failed to seed motivational phrases: %v", err)
	}

	recreation := []models.RecreationPhrase{
		{Position: 1, Text: "Rest is part of the program."},
		{Position: 2, Text: "Recovery day: stretch and breathe."},
		{Position: 3, Text: "Easy day. Your legs earned it."},
		{Position: 4, Text: "A walk today keeps you running tomorrow."},
	}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&recreation).Error; err != nil {
		log.Printf("Failed to seed recreation phrases: %v", err)
	}
}
