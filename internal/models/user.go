package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email  string `gorm:"uniqueIndex;not null" json:"email"`
	Name   string `json:"name"`
	Gender Gender `gorm:"type:text" json:"gender"`
	Avatar string `json:"avatar"`

	// IANA zone name reported by the mobile client. All streak arithmetic
	// runs in this zone.
	Timezone string `gorm:"default:'Europe/Moscow'" json:"timezone"`

	TotalMRun       int        `gorm:"default:0" json:"totalMRun"`
	SkipBalance     int        `gorm:"default:0" json:"skipBalance"`
	LastSkipDate    *time.Time `json:"lastSkipDate"`
	BlockedTraining bool       `gorm:"default:false" json:"blockedTraining"`

	LastCompletedID *uint    `json:"-"`
	LastCompleted   *History `gorm:"foreignKey:LastCompletedID" json:"lastCompleted,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// LastCompletedDay returns the curriculum day of the most recent completed
// training, or 0 when the user has not trained yet.
func (u *User) LastCompletedDay() int {
	if u.LastCompleted == nil {
		return 0
	}
	return u.LastCompleted.DayNumber
}
