package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipStatus string

const (
	StatusActive    MembershipStatus = "active"
	StatusExpired   MembershipStatus = "expired"
	StatusFrozen    MembershipStatus = "frozen"
	StatusCancelled MembershipStatus = "cancelled"
)

func ValidMembershipStatus(s MembershipStatus) bool {
	switch s {
	case StatusActive, StatusExpired, StatusFrozen, StatusCancelled:
		return true
	}
	return false
}

// PlanTypes is the fixed set of plans the club sells.
var PlanTypes = []string{
	"Monthly Basic",
	"Monthly Premium",
	"Quarterly Premium",
	"Annual Premium",
	"Premium Annual",
}

func ValidPlanType(p string) bool {
	for _, plan := range PlanTypes {
		if plan == p {
			return true
		}
	}
	return false
}

// Membership is one historical plan enrollment. The table is append-oriented:
// a plan change creates a new row, existing rows are never rewritten. MemberID
// is a plain reference, not a foreign key; rows survive deletion of the member.
type Membership struct {
	ID        string           `gorm:"size:36;primaryKey" json:"id"`
	MemberID  string           `gorm:"size:36;index;not null" json:"member_id"`
	PlanType  string           `gorm:"size:50;not null" json:"plan_type"`
	Status    MembershipStatus `gorm:"size:20;not null;default:active" json:"status"`
	StartDate time.Time        `gorm:"not null" json:"start_date"`
	EndDate   time.Time        `gorm:"not null" json:"end_date"`
	Price     float64          `gorm:"not null" json:"price"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
