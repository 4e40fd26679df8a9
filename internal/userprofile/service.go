package userprofile

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

var ErrUserNotFound = errors.New("user not found")

const (
	maxBioLength = 500
	dateLayout   = "2006-01-02"
)

type Service interface {
	GetProfile(userID uint) (*ProfileResponse, error)
	GetUserByEmail(email string) (*PublicProfile, error)
	UpdateProfile(userID uint, req UpdateProfileRequest) (*ProfileResponse, error)
	SetProfileImage(userID uint, imageURL string) (*auth.User, error)
	RegistrationHistory(userID uint) ([]RegistrationHistoryEntry, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// GetProfile returns the profile with stats matching the account role
func (s *service) GetProfile(userID uint) (*ProfileResponse, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{}
	switch user.Role {
	case auth.RoleParticipant:
		ps, err := s.repo.ParticipantStats(user.Email, s.now().Truncate(24*time.Hour))
		if err != nil {
			return nil, err
		}
		stats["total_registrations"] = ps.TotalRegistrations
		stats["events_attended"] = ps.EventsAttended
		stats["upcoming_events"] = ps.UpcomingEvents
	case auth.RoleLeader:
		ls, err := s.repo.LeaderStats(user.ID)
		if err != nil {
			return nil, err
		}
		stats["total_clubs"] = ls.TotalClubs
		stats["total_events"] = ls.TotalEvents
		stats["total_registrations"] = ls.TotalRegistrations
		stats["total_attendees"] = ls.TotalAttendees
	case auth.RoleUniversity:
		us, err := s.repo.UniversityStats()
		if err != nil {
			return nil, err
		}
		stats["total_clubs"] = us.TotalClubs
		stats["total_events"] = us.TotalEvents
		stats["total_participants"] = us.TotalParticipants
		stats["total_leaders"] = us.TotalLeaders
	}

	return toProfileResponse(user, stats), nil
}

func (s *service) GetUserByEmail(email string) (*PublicProfile, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		Role:         user.Role,
	}, nil
}

// UpdateProfile changes name and bio; the bio is clamped to 500 characters
func (s *service) UpdateProfile(userID uint, req UpdateProfileRequest) (*ProfileResponse, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if len(bio) > maxBioLength {
			bio = bio[:maxBioLength]
		}
		user.Bio = bio
	}

	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}

	return toProfileResponse(user, map[string]interface{}{}), nil
}

func (s *service) SetProfileImage(userID uint, imageURL string) (*auth.User, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.ProfileImage = imageURL
	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) RegistrationHistory(userID uint) ([]RegistrationHistoryEntry, error) {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.RegistrationHistory(user.Email)
	if err != nil {
		return nil, err
	}

	out := make([]RegistrationHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := RegistrationHistoryEntry{
			RegistrationID: row.RegistrationID,
			EventID:        row.EventID,
			EventTitle:     row.EventTitle,
			EventDate:      row.EventDate.Format(dateLayout),
			EventTime:      row.EventTime,
			ClubName:       row.ClubName,
			ClubCategory:   row.ClubCategory,
			RegisteredAt:   row.RegisteredAt.Format(time.RFC3339),
			CheckedIn:      row.CheckedIn,
			Cancelled:      row.Cancelled,
		}
		if row.QRCodePath != "" {
			url := "/api/v1/registrations/" + strconv.FormatUint(uint64(row.RegistrationID), 10) + "/qr"
			entry.QRCodeURL = &url
		}
		out = append(out, entry)
	}
	return out, nil
}

func toProfileResponse(user *auth.User, stats map[string]interface{}) *ProfileResponse {
	return &ProfileResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		Stats:        stats,
	}
}
