package seeds

import (
	"fmt"
	"log"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm/clause"
)

// SeedDays creates the 100-day curriculum skeleton. Workout descriptions
// are edited by staff afterwards; the seeder only guarantees every day
// exists.
func SeedDays() {
	log.Println("Seeding workout curriculum...")

	days := make([]models.Day, 0, models.CurriculumLength)
	for n := 1; n <= models.CurriculumLength; n++ {
		days = append(days, models.Day{
			DayNumber:   n,
			Workout:     defaultWorkout(n),
			WorkoutInfo: fmt.Sprintf("Day %d of the running program", n),
		})
	}

	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&days).Error; err != nil {
		log.Printf("Failed to seed days: %v", err)
	}
}

func defaultWorkout(day int) string {
	switch {
	case day <= 10:
		return "1 min run / 2 min walk, 7 intervals"
	case day <= 30:
		return "3 min run / 2 min walk, 6 intervals"
	case day <= 60:
		return "7 min run / 1 min walk, 4 intervals"
	case day <= 90:
		return "15 min run / 1 min walk, 2 intervals"
	default:
		return "30 min continuous run"
	}
}
