package models

import "time"

// CurriculumLength is the number of days in the workout program.
const CurriculumLength = 100

// Day is one day of the 100-day workout curriculum. Static reference data.
type Day struct {
	DayNumber        int    `gorm:"primaryKey" json:"dayNumber"`
	Workout          string `json:"workout"`
	WorkoutInfo      string `json:"workoutInfo"`
	MotivationPhrase string `json:"motivationPhrase"`
}

func (Day) TableName() string {
	return "days"
}

// History is one completed training session. Rows are append-only: they are
// written once when the client reports a finished workout and never mutated.
type History struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID    string `gorm:"index;not null" json:"-"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	DayNumber int    `gorm:"not null" json:"dayNumber"`
	Day       Day    `gorm:"foreignKey:DayNumber" json:"-"`

	TrainingStart time.Time `gorm:"index;not null" json:"trainingStart"`
	TrainingEnd   time.Time `gorm:"not null" json:"trainingEnd"`

	// Place names visited during the session, in visit order.
	Cities []string `gorm:"serializer:json" json:"cities"`

	Distance  int  `json:"distance"` // meters
	MaxSpeed  int  `json:"maxSpeed"`
	AvgSpeed  int  `json:"avgSpeed"`
	Completed bool `gorm:"default:true" json:"completed"`
}

func (History) TableName() string {
	return "histories"
}
