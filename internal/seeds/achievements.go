package seeds

import (
	"log"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm/clause"
)

// SeedAchievements loads the achievement catalog. Ids are stable: the rule
// engine dispatches on them.
func SeedAchievements() {
	log.Println("Seeding achievement catalog...")

	achievements := []models.Achievement{
		{ID: 1, Title: "Persistent", Description: "Four trainings in one week.", Icon: "persistent", Stars: 2, RewardPoints: 1, Recurring: true, Source: models.SourceBackend},
		{ID: 2, Title: "Machine", Description: "Five trainings in one week.", Icon: "machine", Stars: 3, RewardPoints: 2, Recurring: true, Source: models.SourceBackend},
		{ID: 3, Title: "Equator", Description: "Halfway there: day 50 completed.", Icon: "equator", Stars: 2, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 4, Title: "20 km club", Description: "20 kilometers run in total.", Icon: "club_20", Stars: 1, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 5, Title: "50 km club", Description: "50 kilometers run in total.", Icon: "club_50", Stars: 1, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 6, Title: "100 km club", Description: "100 kilometers run in total.", Icon: "club_100", Stars: 2, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 7, Title: "150 km club", Description: "150 kilometers run in total.", Icon: "club_150", Stars: 2, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 8, Title: "200 km club", Description: "200 kilometers run in total.", Icon: "club_200", Stars: 2, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 9, Title: "300 km club", Description: "300 kilometers run in total.", Icon: "club_300", Stars: 3, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 10, Title: "500 km club", Description: "500 kilometers run in total.", Icon: "club_500", Stars: 3, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 11, Title: "1000 km club", Description: "1000 kilometers run in total.", Icon: "club_1000", Stars: 3, RewardPoints: 3, Source: models.SourceBackend},
		{ID: 12, Title: "Starred goblet", Description: "3 trainings completed.", Icon: "goblet_3", Stars: 1, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 13, Title: "Starred goblet", Description: "10 trainings completed.", Icon: "goblet_10", Stars: 2, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 14, Title: "Starred goblet", Description: "30 trainings completed.", Icon: "goblet_30", Stars: 3, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 15, Title: "Starred goblet", Description: "50 trainings completed.", Icon: "goblet_50", Stars: 4, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 16, Title: "Starred goblet", Description: "70 trainings completed.", Icon: "goblet_70", Stars: 5, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 17, Title: "Big starred goblet", Description: "All 100 trainings completed.", Icon: "goblet_100", Stars: 6, RewardPoints: 3, Source: models.SourceBackend},
		{ID: 18, Title: "Morning runner", Description: "A training finished before 8 AM.", Icon: "morning", Stars: 1, RewardPoints: 1, Source: models.SourceIOS},
		{ID: 19, Title: "Night owl", Description: "A training finished after 10 PM.", Icon: "night", Stars: 1, RewardPoints: 1, Source: models.SourceIOS},
		{ID: 20, Title: "Weather proof", Description: "A training completed in the rain.", Icon: "rain", Stars: 2, RewardPoints: 1, Source: models.SourceIOS},
		{ID: 21, Title: "Tourist", Description: "A training in a new city.", Icon: "tourist", Stars: 2, RewardPoints: 1, Source: models.SourceBackend},
		{ID: 22, Title: "Traveler", Description: "Three cities in a single training.", Icon: "traveler", Stars: 3, RewardPoints: 2, Source: models.SourceBackend},
		{ID: 23, Title: "Sharer", Description: "A training shared to social media.", Icon: "share", Stars: 1, RewardPoints: 0, Source: models.SourceIOS},
		{ID: 24, Title: "Marathon watcher", Description: "Joined a live marathon broadcast.", Icon: "marathon", Stars: 1, RewardPoints: 0, Source: models.SourceIOS},
		{ID: 25, Title: "Health sync", Description: "Connected a health platform.", Icon: "health", Stars: 1, RewardPoints: 0, Source: models.SourceIOS},
		{ID: 26, Title: "Apple Watch", Description: "A training recorded from the watch.", Icon: "watch", Stars: 1, RewardPoints: 1, Source: models.SourceIOS},
	}

	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&achievements).Error; err != nil {
		log.Printf("Failed to seed achievements: %v", err)
	}
}
