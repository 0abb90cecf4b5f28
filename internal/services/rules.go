package services

import (
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
)

// ruleKind selects which generic check evaluates a catalog id.
type ruleKind int

const (
	kindWeeklyCadence ruleKind = iota // exactly N sessions started this calendar week
	kindEquator                       // latest session is a specific curriculum day
	kindDistanceClub                  // lifetime distance of at least N km
	kindGoblet                        // curriculum day N reached
	kindTourist                       // latest cities are not a subset of the first session's
	kindTraveler                      // at least N distinct cities in the latest session
)

type rule struct {
	kind      ruleKind
	threshold int
}

// ruleTable binds achievement ids to their checks. Catalog rows without an
// entry here are skipped during evaluation, so new achievements can be
// seeded ahead of their backend rules.
var ruleTable = map[int]rule{
	1:  {kindWeeklyCadence, 4}, // Persistent
	2:  {kindWeeklyCadence, 5}, // Machine
	3:  {kindEquator, 50},      // Equator
	4:  {kindDistanceClub, 20},
	5:  {kindDistanceClub, 50},
	6:  {kindDistanceClub, 100},
	7:  {kindDistanceClub, 150},
	8:  {kindDistanceClub, 200},
	9:  {kindDistanceClub, 300},
	10: {kindDistanceClub, 500},
	11: {kindDistanceClub, 1000},
	12: {kindGoblet, 3},
	13: {kindGoblet, 10},
	14: {kindGoblet, 30},
	15: {kindGoblet, 50},
	16: {kindGoblet, 70},
	17: {kindGoblet, 100},
	21: {kindTourist, 0},  // Tourist
	22: {kindTraveler, 3}, // Traveler
}

// satisfied reports whether the rule holds for the user's state. latest is
// the session that triggered the evaluation; a user with no history yet
// satisfies no rule. No wall-clock reads happen here: now is the caller's.
func (s *AchievementService) satisfied(r rule, user *models.User, latest *models.History, now time.Time) (bool, error) {
	if latest == nil {
		return false, nil
	}

	switch r.kind {
	case kindWeeklyCadence:
		loc := userLocation(user)
		localNow := now.In(loc)
		y, m, d := localNow.Date()
		weekStart := time.Date(y, m, d-mondayIndex(localNow), 0, 0, 0, 0, loc)
		count, err := s.histories.CountStartedBetween(user.ID, weekStart, localNow)
		if err != nil {
			return false, err
		}
		// exact match: the badge marks the cadence itself, not a threshold
		return count == int64(r.threshold), nil

	case kindEquator:
		return latest.DayNumber == r.threshold, nil

	case kindDistanceClub:
		return user.TotalMRun/1000 >= r.threshold, nil

	case kindGoblet:
		return latest.DayNumber >= r.threshold, nil

	case kindTourist:
		if latest.DayNumber == 1 {
			return false, nil
		}
		first, err := s.histories.FirstSession(user.ID)
		if err != nil {
			return false, err
		}
		if first == nil {
			return false, nil
		}
		return !citySubset(latest.Cities, first.Cities), nil

	case kindTraveler:
		return distinctCities(latest.Cities) >= r.threshold, nil
	}

	return false, nil
}

// mondayIndex maps time.Weekday to a Monday-based index (Monday == 0).
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func userLocation(user *models.User) *time.Location {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func distinctCities(cities []string) int {
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// citySubset reports whether every city in sub also appears in super.
func citySubset(sub, super []string) bool {
	set := make(map[string]struct{}, len(super))
	for _, c := range super {
		set[c] = struct{}{}
	}
	for _, c := range sub {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}
