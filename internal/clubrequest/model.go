package clubrequest

import "time"

// Proposal lifecycle states
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ClubRequest represents the club_requests table
type ClubRequest struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProposerID     uint   `gorm:"not null;index" json:"proposer_id"`
	Name           string `gorm:"size:120;not null" json:"name"`
	Description    string `gorm:"type:text;not null" json:"description"`
	Category       string `gorm:"size:80" json:"category"`
	Mission        string `gorm:"type:text" json:"mission"`
	TargetAudience string `gorm:"size:255" json:"target_audience"`
	ActivitiesPlan string `gorm:"type:text" json:"activities_plan"`
	Status         string `gorm:"size:20;not null;default:pending;index" json:"status"`

	DecisionMessage string     `gorm:"type:text" json:"decision_message"`
	DecidedAt       *time.Time `json:"decided_at"`
	// Decisions stay hidden from the proposer until this instant
	VisibleFrom *time.Time `json:"visible_from"`

	// Credentials issued on approval, revealed to the proposer with the decision
	LeaderEmail    string `gorm:"size:255" json:"-"`
	LeaderPassword string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ClubRequest) TableName() string {
	return "club_requests"
}

// CreateRequest is the proposal payload
type CreateRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Category       string `json:"category"`
	Mission        string `json:"mission"`
	TargetAudience string `json:"target_audience"`
	ActivitiesPlan string `json:"activities_plan"`
}

// DecisionRequest is the university's verdict payload
type DecisionRequest struct {
	Decision       string `json:"decision" binding:"required"`
	Message        string `json:"message"`
	LeaderEmail    string `json:"leader_email"`
	LeaderPassword string `json:"leader_password"`
}

// MyRequestResponse is the proposer's view; decision fields are nil
// until the visibility window opens
type MyRequestResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Mission        string    `json:"mission"`
	TargetAudience string    `json:"target_audience"`
	ActivitiesPlan string    `json:"activities_plan"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	DecisionMessage *string    `json:"decision_message"`
	DecidedAt       *time.Time `json:"decided_at"`
	LeaderEmail     *string    `json:"leader_email"`
	LeaderPassword  *string    `json:"leader_password"`
}

// AdminRequestResponse is the university review view
type AdminRequestResponse struct {
	ID             uint       `json:"id"`
	ProposerName   *string    `json:"proposer_name"`
	ProposerEmail  *string    `json:"proposer_email"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Mission        string     `json:"mission"`
	TargetAudience string     `json:"target_audience"`
	ActivitiesPlan string     `json:"activities_plan"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	DecidedAt      *time.Time `json:"decided_at"`
	DecisionMsg    string     `json:"decision_message"`
}
