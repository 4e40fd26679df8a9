package userprofile

import (
	"time"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

// ProfileResponse is the authenticated user's own profile with
// role-specific stats attached
type ProfileResponse struct {
	ID           uint                   `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Role         auth.Role              `json:"role"`
	Bio          string                 `json:"bio"`
	ProfileImage string                 `json:"profile_image"`
	CreatedAt    time.Time              `json:"created_at"`
	Stats        map[string]interface{} `json:"stats"`
}

// PublicProfile is the shape leaders see when looking up a participant
type PublicProfile struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profile_image"`
	Bio          string    `json:"bio"`
	Role         auth.Role `json:"role"`
}

// UpdateProfileRequest carries editable profile fields
type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

// RegistrationHistoryEntry is one row of the user's RSVP history
type RegistrationHistoryEntry struct {
	RegistrationID uint    `json:"registration_id"`
	EventID        uint    `json:"event_id"`
	EventTitle     string  `json:"event_title"`
	EventDate      string  `json:"event_date"`
	EventTime      string  `json:"event_time"`
	ClubName       string  `json:"club_name"`
	ClubCategory   string  `json:"club_category"`
	RegisteredAt   string  `json:"registered_at"`
	CheckedIn      bool    `json:"checked_in"`
	Cancelled      bool    `json:"cancelled"`
	QRCodeURL      *string `json:"qr_code_url"`
}

// ParticipantStats summarizes a participant's activity
type ParticipantStats struct {
	TotalRegistrations int64 `json:"total_registrations"`
	EventsAttended     int64 `json:"events_attended"`
	UpcomingEvents     int64 `json:"upcoming_events"`
}

// LeaderStats summarizes a leader's clubs
type LeaderStats struct {
	TotalClubs         int64 `json:"total_clubs"`
	TotalEvents        int64 `json:"total_events"`
	TotalRegistrations int64 `json:"total_registrations"`
	TotalAttendees     int64 `json:"total_attendees"`
}

// UniversityStats summarizes the whole platform
type UniversityStats struct {
	TotalClubs        int64 `json:"total_clubs"`
	TotalEvents       int64 `json:"total_events"`
	TotalParticipants int64 `json:"total_participants"`
	TotalLeaders      int64 `json:"total_leaders"`
}
