package services

import (
	"fmt"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm"
)

type OutcomeKind string

const (
	// OutcomeUnchanged: nothing to account for. The timezone may still have
	// been updated.
	OutcomeUnchanged OutcomeKind = "unchanged"
	// OutcomeSkipped: missed days were covered by skip credits.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeBlocked: more days missed than credits available.
	OutcomeBlocked OutcomeKind = "blocked"
)

// Outcome is the result of reconciling missed training days against the
// user's skip credits.
type Outcome struct {
	Kind            OutcomeKind
	DaysConsumed    int
	NewSkipBalance  int
	NewLastSkipDate *time.Time
}

// StreakService accounts for missed curriculum days when the client reports
// its timezone.
//
// Blocked policy: the user is marked blocked_training and the balance is
// reset to the configured post-block value; training history is kept.
type StreakService struct {
	db             *gorm.DB
	blockedBalance int
}

func NewStreakService(db *gorm.DB, blockedBalance int) *StreakService {
	return &StreakService{db: db, blockedBalance: blockedBalance}
}

// Reconcile computes the outcome for a timezone report at now and persists
// it. now always comes from the caller; nothing here reads the wall clock.
// The user's LastCompleted association must be loaded.
func (s *StreakService) Reconcile(user *models.User, tzName string, now time.Time) (Outcome, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Outcome{}, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}

	out := computeOutcome(user, loc, now, s.blockedBalance)

	updates := map[string]any{}
	if user.Timezone != tzName {
		user.Timezone = tzName
		updates["timezone"] = tzName
	}
	switch out.Kind {
	case OutcomeSkipped:
		user.SkipBalance = out.NewSkipBalance
		user.LastSkipDate = out.NewLastSkipDate
		updates["skip_balance"] = out.NewSkipBalance
		updates["last_skip_date"] = out.NewLastSkipDate
	case OutcomeBlocked:
		user.SkipBalance = out.NewSkipBalance
		user.BlockedTraining = true
		updates["skip_balance"] = out.NewSkipBalance
		updates["blocked_training"] = true
	}
	if len(updates) == 0 {
		return out, nil
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return out, nil
}

// computeOutcome is the pure decision: it depends only on the user row, the
// target location, and the supplied clock.
func computeOutcome(user *models.User, loc *time.Location, now time.Time, blockedBalance int) Outcome {
	unchanged := Outcome{
		Kind:            OutcomeUnchanged,
		NewSkipBalance:  user.SkipBalance,
		NewLastSkipDate: user.LastSkipDate,
	}

	if user.BlockedTraining {
		return unchanged
	}
	// no penalty before the first training or after finishing the program
	if user.LastCompleted == nil || user.LastCompleted.DayNumber == models.CurriculumLength {
		return unchanged
	}

	lastActivity := user.LastCompleted.TrainingStart
	if user.LastSkipDate != nil && user.LastSkipDate.After(lastActivity) {
		lastActivity = *user.LastSkipDate
	}

	// Grace window: today and yesterday don't count as missed.
	dayAgo := now.Add(-24 * time.Hour)
	missed := calendarDaysBetween(lastActivity.In(loc), dayAgo.In(loc))
	if missed <= 0 {
		return unchanged
	}

	if user.SkipBalance >= missed {
		return Outcome{
			Kind:            OutcomeSkipped,
			DaysConsumed:    missed,
			NewSkipBalance:  user.SkipBalance - missed,
			NewLastSkipDate: &dayAgo,
		}
	}

	return Outcome{
		Kind:           OutcomeBlocked,
		DaysConsumed:   user.SkipBalance,
		NewSkipBalance: blockedBalance,
	}
}

// calendarDaysBetween subtracts dates, not elapsed hours: 23:59 to 00:01 the
// next day is one day.
func calendarDaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
