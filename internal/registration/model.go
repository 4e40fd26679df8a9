package registration

import "time"

// Registration represents the registrations table. Rows are soft-state:
// cancellation flips a flag and re-registering reactivates the same row,
// so (event_id, email) stays unique for the lifetime of the event.
type Registration struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID         uint       `gorm:"not null;uniqueIndex:idx_event_email" json:"event_id"`
	UserID          *uint      `gorm:"index" json:"user_id,omitempty"`
	ParticipantName string     `gorm:"size:120;not null" json:"participant_name"`
	Email           string     `gorm:"size:255;not null;uniqueIndex:idx_event_email" json:"email"`
	CheckedIn       bool       `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt     *time.Time `json:"checked_in_at"`
	Cancelled       bool       `gorm:"not null;default:false" json:"cancelled"`
	QRCodePath      string     `gorm:"size:255" json:"-"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"timestamp"`
}

func (Registration) TableName() string {
	return "registrations"
}

// GuestRegisterRequest is the unauthenticated registration payload
type GuestRegisterRequest struct {
	EventID         uint   `json:"event_id" binding:"required"`
	ParticipantName string `json:"participant_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
}

// RegisterResult reports the outcome of a registration attempt
type RegisterResult struct {
	Registration *Registration
	Created      bool // false when a cancelled RSVP was reactivated
}

// CheckInRequest carries the scanned QR payload (or a bare numeric ID)
type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckInResult is returned to the scanning leader
type CheckInResult struct {
	Message     string     `json:"message"`
	Participant string     `json:"participant"`
	Email       string     `json:"email"`
	EventTitle  string     `json:"event"`
	EventID     uint       `json:"event_id"`
	Already     bool       `json:"-"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

// RosterEntry is one registration row in the leader's attendee list
type RosterEntry struct {
	Registration
	ParticipantProfileImage *string `json:"participant_profile_image,omitempty"`
	ParticipantBio          *string `json:"participant_bio,omitempty"`
}

// ParticipantQR points a participant at one of their QR code images
type ParticipantQR struct {
	RegistrationID uint   `json:"registration_id"`
	EventID        uint   `json:"event_id"`
	QRCodeURL      string `json:"qr_code_url"`
}
