package members

import (
	"errors"
	"strings"
	"time"

	"fitclub-backend/internal/models"

	"gorm.io/gorm"
)

// MemberView is the member row the dashboard shows: the identity joined with
// the newest membership record and the newest check-in. It is recomputed on
// every read, never stored.
type MemberView struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Phone       string                  `json:"phone"`
	Plan        string                  `json:"plan"`
	Status      models.MembershipStatus `json:"status"`
	JoinDate    time.Time               `json:"join_date"`
	ExpiryDate  *time.Time              `json:"expiry_date,omitempty"`
	LastCheckIn *time.Time              `json:"last_check_in,omitempty"`
}

// BuildMemberView reduces a member's newest records into the derived view.
// A member with no history degrades to plan "N/A" and status "expired".
func BuildMemberView(user models.User, membership *models.Membership, checkIn *models.CheckIn) MemberView {
	view := MemberView{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Plan:     "N/A",
		Status:   models.StatusExpired,
		JoinDate: user.CreatedAt,
	}

	if membership != nil {
		view.Plan = membership.PlanType
		view.Status = membership.Status
		view.JoinDate = membership.StartDate
		end := membership.EndDate
		view.ExpiryDate = &end
	}

	if checkIn != nil {
		t := checkIn.CheckInTime
		view.LastCheckIn = &t
	}

	return view
}

// latestMembership fetches the newest record by creation time. Records
// created in the same instant are ordered by id, so the pick is stable.
func latestMembership(db *gorm.DB, memberID string) (*models.Membership, error) {
	var m models.Membership
	err := db.Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func lastCheckIn(db *gorm.DB, memberID string) (*models.CheckIn, error) {
	var ci models.CheckIn
	err := db.Where("member_id = ?", memberID).
		Order("check_in_time DESC, id DESC").
		First(&ci).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// ResolveMember computes the derived view for one member. The two point reads
// are not a snapshot; a write between them can show through. Fine for the
// dashboard, do not use this for billing.
func ResolveMember(db *gorm.DB, user models.User) (MemberView, error) {
	membership, err := latestMembership(db, user.ID)
	if err != nil {
		return MemberView{}, err
	}

	checkIn, err := lastCheckIn(db, user.ID)
	if err != nil {
		return MemberView{}, err
	}

	return BuildMemberView(user, membership, checkIn), nil
}

// ResolveMembers lists members matching the optional free-text search
// (case-insensitive substring on name or email) and status filter. The filter
// applies to the derived status, i.e. the newest record per member: a member
// whose newest record moved away from the filtered status is excluded, no
// matter what older records say. Cost is linear in the number of matching
// members, with two point reads each.
func ResolveMembers(db *gorm.DB, status, search string) ([]MemberView, error) {
	query := db.Where("role = ?", models.RoleMember)
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	views := make([]MemberView, 0, len(users))
	for _, u := range users {
		view, err := ResolveMember(db, u)
		if err != nil {
			return nil, err
		}
		if status != "" && status != "all" && view.Status != models.MembershipStatus(status) {
			continue
		}
		views = append(views, view)
	}

	return views, nil
}
