package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress is a body-measurement entry in a member's time series. All metrics
// are optional; a record may carry only notes.
type Progress struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	MemberID  string    `gorm:"size:36;index;not null" json:"member_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Weight    *float64  `json:"weight,omitempty"`
	BodyFat   *float64  `json:"body_fat,omitempty"`
	Muscle    *float64  `json:"muscle,omitempty"`
	Chest     *float64  `json:"chest,omitempty"`
	Waist     *float64  `json:"waist,omitempty"`
	Arms      *float64  `json:"arms,omitempty"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}
