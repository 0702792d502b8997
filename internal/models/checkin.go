package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn is one gym visit. Append-only; like memberships, rows keep their
// member_id even after the member account is deleted.
type CheckIn struct {
	ID          string    `gorm:"size:36;primaryKey" json:"id"`
	MemberID    string    `gorm:"size:36;index;not null" json:"member_id"`
	Location    string    `gorm:"size:100;not null" json:"location"`
	CheckInTime time.Time `gorm:"not null;index" json:"check_in_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ci *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	if ci.CheckInTime.IsZero() {
		ci.CheckInTime = time.Now()
	}
	return nil
}
