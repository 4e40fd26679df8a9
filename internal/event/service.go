package event

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("event belongs to another club")
)

// Policy rejections surfaced to leaders
var (
	ErrEditWindowClosed   = &PolicyError{Message: "events can only be edited until the day before they start"}
	ErrDeleteWindowClosed = &PolicyError{Message: "events can only be deleted at least 7 days in advance"}
	ErrDateTooSoon        = &PolicyError{Message: "new date must be at least one day ahead"}
)

type Service interface {
	CreateEvent(leaderID uint, req CreateEventRequest) (*EventResponse, error)
	UpdateEvent(leaderID, eventID uint, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(leaderID, eventID uint) error
	GetEvent(id uint) (*EventResponse, error)
	ListEvents() ([]EventResponse, error)
	BrowseEvents(filter BrowseFilter) ([]EventResponse, error)
	LeaderEvents(leaderID uint) ([]LeaderEventResponse, error)
	TrackViews(eventIDs []uint) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// validateEventFields checks creation input in a fixed order so callers
// always see the first failing field
func validateEventFields(req *CreateEventRequest) (time.Time, error) {
	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 3 {
		return time.Time{}, &ValidationError{Field: "title", Message: "title must be at least 3 characters"}
	}

	date, err := time.ParseInLocation(DateLayout, req.Date, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
	}

	if _, err := time.Parse(TimeLayout, req.Time); err != nil {
		return time.Time{}, &ValidationError{Field: "time", Message: "time must be in HH:MM format"}
	}

	req.Location = strings.TrimSpace(req.Location)
	if req.Location == "" {
		return time.Time{}, &ValidationError{Field: "location", Message: "location is required"}
	}

	return date, nil
}

// CreateEvent publishes a new event for one of the leader's clubs
func (s *service) CreateEvent(leaderID uint, req CreateEventRequest) (*EventResponse, error) {
	if req.ClubID == 0 {
		return nil, &ValidationError{Field: "club_id", Message: "club_id is required"}
	}

	date, err := validateEventFields(&req)
	if err != nil {
		return nil, err
	}

	owns, err := s.repo.LeaderOwnsClub(leaderID, req.ClubID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotOwner
	}

	var poster *string
	if p := strings.TrimSpace(req.PosterImage); p != "" {
		poster = &p
	}

	e := &Event{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		StartTime:   req.Time,
		Location:    req.Location,
		PosterImage: poster,
	}
	if err := s.repo.Create(e); err != nil {
		return nil, err
	}

	resp := toResponse(e)
	return &resp, nil
}

// UpdateEvent applies a partial update while the edit window is open
func (s *service) UpdateEvent(leaderID, eventID uint, req UpdateEventRequest) (*EventResponse, error) {
	e, err := s.repo.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	owns, err := s.repo.LeaderOwnsEvent(leaderID, eventID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotOwner
	}

	now := s.now()
	if !CanEdit(e.Date, now) {
		return nil, ErrEditWindowClosed
	}

	if req.ClubID != nil && *req.ClubID != 0 {
		owns, err := s.repo.LeaderOwnsClub(leaderID, *req.ClubID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, ErrNotOwner
		}
		e.ClubID = *req.ClubID
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		title := strings.TrimSpace(*req.Title)
		if len(title) < 3 {
			return nil, &ValidationError{Field: "title", Message: "title must be at least 3 characters"}
		}
		e.Title = title
	}
	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil && strings.TrimSpace(*req.Location) != "" {
		e.Location = strings.TrimSpace(*req.Location)
	}
	if req.PosterImage != nil {
		if p := strings.TrimSpace(*req.PosterImage); p != "" {
			e.PosterImage = &p
		} else {
			e.PosterImage = nil
		}
	}
	if req.Date != nil && *req.Date != "" {
		newDate, err := time.ParseInLocation(DateLayout, *req.Date, time.UTC)
		if err != nil {
			return nil, &ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
		}
		if DaysUntil(newDate, now) < 1 {
			return nil, ErrDateTooSoon
		}
		e.Date = newDate
	}
	if req.Time != nil && *req.Time != "" {
		if _, err := time.Parse(TimeLayout, *req.Time); err != nil {
			return nil, &ValidationError{Field: "time", Message: "time must be in HH:MM format"}
		}
		e.StartTime = *req.Time
	}

	if err := s.repo.Update(e); err != nil {
		return nil, err
	}

	resp := toResponse(e)
	return &resp, nil
}

// DeleteEvent removes the event and all of its registrations once the
// deletion window check passes
func (s *service) DeleteEvent(leaderID, eventID uint) error {
	e, err := s.repo.GetByID(eventID)
	if err != nil {
		return err
	}

	owns, err := s.repo.LeaderOwnsEvent(leaderID, eventID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotOwner
	}

	if !CanDelete(e.Date, s.now()) {
		return ErrDeleteWindowClosed
	}

	return s.repo.DeleteCascade(eventID)
}

func (s *service) GetEvent(id uint) (*EventResponse, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(e)
	return &resp, nil
}

func (s *service) ListEvents() ([]EventResponse, error) {
	events, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return toResponses(events), nil
}

func (s *service) BrowseEvents(filter BrowseFilter) ([]EventResponse, error) {
	events, err := s.repo.Browse(filter)
	if err != nil {
		return nil, err
	}
	return toResponses(events), nil
}

func (s *service) LeaderEvents(leaderID uint) ([]LeaderEventResponse, error) {
	return s.repo.LeaderEvents(leaderID)
}

// TrackViews increments view counters for the given events, skipping
// unknown ids and counting duplicates once
func (s *service) TrackViews(eventIDs []uint) error {
	seen := make(map[uint]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		exists, err := s.repo.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := s.repo.IncrementViews(id); err != nil {
			return err
		}
	}
	return nil
}

func toResponses(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toResponse(&events[i]))
	}
	return out
}
