package registration

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/event"
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrCancelledRegistration = errors.New("this RSVP has been cancelled")
	ErrNotEventOwner         = errors.New("registration belongs to another club's event")
	ErrInvalidCode           = errors.New("invalid QR code format")
	ErrCannotCancelCheckedIn = errors.New("cannot cancel after check-in")
)

// ConfirmationMessage is the payload published after a registration,
// consumed by the notification pipeline
type ConfirmationMessage struct {
	RegistrationID  uint   `json:"registration_id"`
	EventID         uint   `json:"event_id"`
	Email           string `json:"email"`
	ParticipantName string `json:"participant_name"`
	EventTitle      string `json:"event_title"`
	EventDate       string `json:"event_date"`
	EventTime       string `json:"event_time"`
	EventLocation   string `json:"event_location"`
	QRCodePath      string `json:"qr_code_path"`
	Reactivated     bool   `json:"reactivated"`
}

// ConfirmationPublisher hands confirmations to the message broker
type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, msg ConfirmationMessage) error
}

// UserGetter resolves an account for authenticated registration
type UserGetter interface {
	GetByID(id uint) (*auth.User, error)
}

type Service interface {
	Register(ctx context.Context, userID, eventID uint) (*RegisterResult, error)
	RegisterGuest(ctx context.Context, req GuestRegisterRequest) (*RegisterResult, error)
	Cancel(eventID uint, email string) error
	AllActive() ([]Registration, error)
	ByParticipant(email string) ([]Registration, error)
	QRsByParticipant(email string) ([]ParticipantQR, error)
	QRImagePath(regID uint) (string, error)
	Roster(leaderID, eventID uint) (*event.EventResponse, []RosterEntry, error)
	CheckIn(leaderID uint, code string) (*CheckInResult, error)
}

type service struct {
	repo      Repository
	events    event.Repository
	users     UserGetter
	publisher ConfirmationPublisher
	now       func() time.Time
}

func NewService(repo Repository, events event.Repository, users UserGetter, publisher ConfirmationPublisher) Service {
	return &service{
		repo:      repo,
		events:    events,
		users:     users,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates (or reactivates) the caller's RSVP for an event
func (s *service) Register(ctx context.Context, userID, eventID uint) (*RegisterResult, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if name == "" {
		name = strings.SplitN(user.Email, "@", 2)[0]
	}

	return s.register(ctx, eventID, &userID, name, user.Email)
}

// RegisterGuest registers by name and email without an account
func (s *service) RegisterGuest(ctx context.Context, req GuestRegisterRequest) (*RegisterResult, error) {
	return s.register(ctx, req.EventID, nil, req.ParticipantName, strings.ToLower(strings.TrimSpace(req.Email)))
}

func (s *service) register(ctx context.Context, eventID uint, userID *uint, name, email string) (*RegisterResult, error) {
	evt, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}

	reg, err := s.repo.GetByEventAndEmail(eventID, email)
	created := false
	switch {
	case err == nil && reg.Cancelled:
		// Reactivation keeps the row, the ID and therefore the QR code
		reg.ParticipantName = name
		reg.Cancelled = false
		if userID != nil {
			reg.UserID = userID
		}
	case errors.Is(err, ErrRegistrationNotFound):
		reg = &Registration{
			EventID:         eventID,
			UserID:          userID,
			ParticipantName: name,
			Email:           email,
		}
		if err := s.repo.Create(reg); err != nil {
			// Lost a race on the (event_id, email) unique index: a
			// concurrent register got there first.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrAlreadyRegistered
			}
			return nil, err
		}
		created = true
	case err != nil:
		return nil, err
	default:
		return nil, ErrAlreadyRegistered
	}

	if err := s.ensureQRCode(reg, evt); err != nil {
		return nil, err
	}
	if err := s.repo.Save(reg); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		msg := ConfirmationMessage{
			RegistrationID:  reg.ID,
			EventID:         evt.ID,
			Email:           reg.Email,
			ParticipantName: reg.ParticipantName,
			EventTitle:      evt.Title,
			EventDate:       evt.Date.Format(event.DateLayout),
			EventTime:       evt.StartTime,
			EventLocation:   evt.Location,
			QRCodePath:      reg.QRCodePath,
			Reactivated:     !created,
		}
		if err := s.publisher.PublishConfirmation(ctx, msg); err != nil {
			log.Printf("⚠️ registration: failed to publish confirmation for %d: %v", reg.ID, err)
		}
	}

	return &RegisterResult{Registration: reg, Created: created}, nil
}

func (s *service) ensureQRCode(reg *Registration, evt *event.Event) error {
	if reg.QRCodePath != "" {
		if _, err := os.Stat(reg.QRCodePath); err == nil {
			return nil
		}
	}

	path := qrFilePath(reg.ID, reg.Email)
	payload := BuildQRPayload(reg.ID, evt.ID, reg.ParticipantName, reg.Email)
	if err := writeQRImage(payload, path); err != nil {
		return err
	}
	reg.QRCodePath = path
	return nil
}

// Cancel soft-deletes an RSVP; the row stays for the audit trail.
// Checked-in registrations can no longer be cancelled.
func (s *service) Cancel(eventID uint, email string) error {
	reg, err := s.repo.GetByEventAndEmail(eventID, email)
	if err != nil {
		return err
	}
	if reg.Cancelled {
		return ErrRegistrationNotFound
	}
	if reg.CheckedIn {
		return ErrCannotCancelCheckedIn
	}

	reg.Cancelled = true
	return s.repo.Save(reg)
}

func (s *service) AllActive() ([]Registration, error) {
	return s.repo.AllActive()
}

func (s *service) ByParticipant(email string) ([]Registration, error) {
	return s.repo.ActiveByEmail(email)
}

func (s *service) QRsByParticipant(email string) ([]ParticipantQR, error) {
	regs, err := s.repo.AllByEmail(email)
	if err != nil {
		return nil, err
	}

	out := make([]ParticipantQR, 0, len(regs))
	for i := range regs {
		out = append(out, ParticipantQR{
			RegistrationID: regs[i].ID,
			EventID:        regs[i].EventID,
			QRCodeURL:      "/api/v1/registrations/" + strconv.FormatUint(uint64(regs[i].ID), 10) + "/qr",
		})
	}
	return out, nil
}

// QRImagePath returns the PNG location for a registration, regenerating
// the file if it went missing
func (s *service) QRImagePath(regID uint) (string, error) {
	reg, err := s.repo.GetByID(regID)
	if err != nil {
		return "", err
	}

	if reg.QRCodePath != "" {
		if _, err := os.Stat(reg.QRCodePath); err == nil {
			return reg.QRCodePath, nil
		}
	}

	evt, err := s.events.GetByID(reg.EventID)
	if err != nil {
		return "", err
	}
	if err := s.ensureQRCode(reg, evt); err != nil {
		return "", err
	}
	if err := s.repo.Save(reg); err != nil {
		return "", err
	}
	return reg.QRCodePath, nil
}

// Roster returns the event and its active registrations for the owning leader
func (s *service) Roster(leaderID, eventID uint) (*event.EventResponse, []RosterEntry, error) {
	evt, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, nil, err
	}

	owns, err := s.events.LeaderOwnsEvent(leaderID, eventID)
	if err != nil {
		return nil, nil, err
	}
	if !owns {
		return nil, nil, ErrNotEventOwner
	}

	entries, err := s.repo.ActiveByEvent(eventID)
	if err != nil {
		return nil, nil, err
	}

	resp := event.EventResponse{
		ID:          evt.ID,
		ClubID:      evt.ClubID,
		Title:       evt.Title,
		Description: evt.Description,
		Date:        evt.Date.Format(event.DateLayout),
		Time:        evt.StartTime,
		Location:    evt.Location,
		PosterImage: evt.PosterImage,
	}
	return &resp, entries, nil
}

// CheckIn resolves a scanned code and marks attendance exactly once.
// The format check runs before any lookup; ownership is verified before
// the registration's own state so a cross-club scan never leaks whether
// the RSVP was cancelled or already used.
func (s *service) CheckIn(leaderID uint, code string) (*CheckInResult, error) {
	regID, ok := ExtractRegistrationID(code)
	if !ok {
		return nil, ErrInvalidCode
	}

	reg, err := s.repo.GetByID(regID)
	if err != nil {
		return nil, err
	}

	owns, err := s.events.LeaderOwnsEvent(leaderID, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotEventOwner
	}

	if reg.Cancelled {
		return nil, ErrCancelledRegistration
	}

	evt, err := s.events.GetByID(reg.EventID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows, err := s.repo.CheckIn(reg.ID, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race or already scanned: report without side effects
		current, err := s.repo.GetByID(reg.ID)
		if err != nil {
			return nil, err
		}
		if current.Cancelled {
			return nil, ErrCancelledRegistration
		}
		return &CheckInResult{
			Message:     "Participant already checked in.",
			Participant: current.ParticipantName,
			Email:       current.Email,
			EventTitle:  evt.Title,
			EventID:     evt.ID,
			Already:     true,
			CheckedInAt: current.CheckedInAt,
		}, nil
	}

	return &CheckInResult{
		Message:     "Check-in successful",
		Participant: reg.ParticipantName,
		Email:       reg.Email,
		EventTitle:  evt.Title,
		EventID:     evt.ID,
		CheckedInAt: &now,
	}, nil
}
