package event

import (
	"fmt"
	"time"
)

// Wire formats for event dates and start times
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event represents the events table
type Event struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID      uint      `gorm:"not null;index" json:"club_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"type:date;not null;index" json:"-"`
	StartTime   string    `gorm:"size:5;not null" json:"time"`
	Location    string    `gorm:"size:255;not null" json:"location"`
	PosterImage *string   `gorm:"size:255" json:"poster_image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// EventInsight tracks per-event view counts
type EventInsight struct {
	EventID uint  `gorm:"primaryKey" json:"event_id"`
	Views   int64 `gorm:"not null;default:0" json:"views"`
}

func (EventInsight) TableName() string {
	return "event_insights"
}

// EventResponse is the public event shape with the date rendered
// in wire format
type EventResponse struct {
	ID          uint    `json:"id"`
	ClubID      uint    `json:"club_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	PosterImage *string `json:"poster_image"`
}

// LeaderEventResponse adds dashboard metrics for the owning leader
type LeaderEventResponse struct {
	EventResponse
	ClubName          string `json:"club_name"`
	RegistrationCount int64  `json:"registration_count"`
	ViewCount         int64  `json:"view_count"`
}

// CreateEventRequest is the event creation payload
type CreateEventRequest struct {
	ClubID      uint   `json:"club_id" form:"club_id"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Date        string `json:"date" form:"date"`
	Time        string `json:"time" form:"time"`
	Location    string `json:"location" form:"location"`
	PosterImage string `json:"poster_image" form:"poster_image"`
}

// UpdateEventRequest carries partial updates; nil fields are untouched
type UpdateEventRequest struct {
	ClubID      *uint   `json:"club_id" form:"club_id"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Date        *string `json:"date" form:"date"`
	Time        *string `json:"time" form:"time"`
	Location    *string `json:"location" form:"location"`
	PosterImage *string `json:"poster_image" form:"poster_image"`
}

// BrowseFilter narrows the participant event listing
type BrowseFilter struct {
	Category string
	DateFrom *time.Time
	Keyword  string
}

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PolicyError signals that a temporal window rule blocked the action
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

func toResponse(e *Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		ClubID:      e.ClubID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(DateLayout),
		Time:        e.StartTime,
		Location:    e.Location,
		PosterImage: e.PosterImage,
	}
}
