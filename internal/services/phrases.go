package services

import (
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm"
)

// PhraseService builds the per-day motivational phrases for the training
// plan. Users who kept a four- or five-a-week cadence last week get rest
// phrases substituted on their projected rest days this week.
type PhraseService struct {
	db *gorm.DB
}

func NewPhraseService(db *gorm.DB) *PhraseService {
	return &PhraseService{db: db}
}

// DynamicPhrases returns one phrase per curriculum day, index 0 = day 1.
func (s *PhraseService) DynamicPhrases(user *models.User, now time.Time) ([]string, error) {
	var phrases []string
	if err := s.db.Model(&models.MotivationalPhrase{}).
		Order("position").Pluck("text", &phrases).Error; err != nil {
		return nil, err
	}
	if user.LastCompleted == nil {
		return phrases, nil
	}

	loc := userLocation(user)
	localNow := now.In(loc)
	// last calendar week, Monday 00:00 through the following Monday
	y, m, d := localNow.Date()
	lastWeekStart := time.Date(y, m, d-mondayIndex(localNow)-7, 0, 0, 0, 0, loc)
	lastWeekEnd := lastWeekStart.AddDate(0, 0, 7)

	var count int64
	if err := s.db.Model(&models.History{}).
		Where("user_id = ? AND completed AND training_start >= ? AND training_start < ?",
			user.ID, lastWeekStart, lastWeekEnd).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count < 4 {
		return phrases, nil
	}

	var rest []string
	if err := s.db.Model(&models.RecreationPhrase{}).
		Order("position").Pluck("text", &rest).Error; err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return phrases, nil
	}

	days := restDays(user, localNow, count >= 5)
	substituteRest(phrases, days, rest)
	return phrases, nil
}

// restDays projects which curriculum-day slots fall on this week's rest
// days, relative to the last completed day. A four-a-week cadence rests
// Wednesday and Saturday; five-a-week rests Monday, Wednesday and Friday.
func restDays(user *models.User, localNow time.Time, fivePerWeek bool) []int {
	dayOfWeek := mondayIndex(localNow) + 1 // 1 = Monday ... 7 = Sunday
	lastDay := user.LastCompleted.DayNumber

	var shifts []int
	if fivePerWeek {
		shifts = []int{1 - dayOfWeek, 3 - dayOfWeek, 5 - dayOfWeek}
		// a Sunday finish pushes the whole pattern one day forward
		if mondayIndex(user.LastCompleted.TrainingStart) == 6 {
			for i := range shifts {
				shifts[i]++
			}
		}
	} else {
		shifts = []int{3 - dayOfWeek, 6 - dayOfWeek}
	}

	days := make([]int, 0, len(shifts))
	for _, shift := range shifts {
		if shift >= 0 {
			days = append(days, lastDay+shift)
		}
	}
	return days
}

// substituteRest overwrites the phrase slots at days (0-based curriculum
// indexes) with rest phrases, starting at a point proportional to how far
// into the program the user is and cycling from there.
func substituteRest(phrases []string, days []int, rest []string) {
	if len(days) == 0 {
		return
	}
	idx := 0
	if len(rest) > 1 {
		idx = days[0] * (len(rest) - 1) / models.CurriculumLength
		idx %= len(rest)
	}
	for _, day := range days {
		if day < 0 || day >= len(phrases) {
			continue
		}
		phrases[day] = rest[idx]
		idx = (idx + 1) % len(rest)
	}
}
