package clubrequest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/club"
)

var (
	ErrRequestNotFound = errors.New("club request not found")
	ErrAlreadyDecided  = errors.New("request already decided")
	ErrClubNameTaken   = errors.New("a club with this name already exists")
	ErrPendingExists   = errors.New("a pending request with this name already exists")
	ErrLeaderEmailUsed = errors.New("leader email already exists")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Decisions become visible to the proposer after the review window
const decisionVisibilityDelay = 5 * 24 * time.Hour

type Service interface {
	CreateRequest(proposerID uint, req CreateRequest) (uint, error)
	MyRequests(proposerID uint, now time.Time) ([]MyRequestResponse, error)
	ListForReview(status string) ([]AdminRequestResponse, error)
	Decide(reqID uint, req DecisionRequest) (string, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// CreateRequest files a club proposal on behalf of a participant
func (s *service) CreateRequest(proposerID uint, req CreateRequest) (uint, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)

	if len(name) < 3 {
		return 0, &ValidationError{Field: "name", Message: "club name must be at least 3 characters"}
	}
	if len(description) < 10 {
		return 0, &ValidationError{Field: "description", Message: "description must be at least 10 characters"}
	}

	if exists, err := s.repo.ClubNameExists(name); err != nil {
		return 0, err
	} else if exists {
		return 0, ErrClubNameTaken
	}

	if pending, err := s.repo.HasPendingWithName(name); err != nil {
		return 0, err
	} else if pending {
		return 0, ErrPendingExists
	}

	visibleFrom := s.now().UTC().Add(decisionVisibilityDelay)
	cr := &ClubRequest{
		ProposerID:     proposerID,
		Name:           name,
		Description:    description,
		Category:       strings.TrimSpace(req.Category),
		Mission:        strings.TrimSpace(req.Mission),
		TargetAudience: strings.TrimSpace(req.TargetAudience),
		ActivitiesPlan: strings.TrimSpace(req.ActivitiesPlan),
		Status:         StatusPending,
		VisibleFrom:    &visibleFrom,
	}

	if err := s.repo.Create(cr); err != nil {
		return 0, err
	}
	return cr.ID, nil
}

// MyRequests lists the proposer's requests. Decision details and issued
// leader credentials stay nil until the visibility window has opened.
func (s *service) MyRequests(proposerID uint, now time.Time) ([]MyRequestResponse, error) {
	reqs, err := s.repo.GetByProposer(proposerID)
	if err != nil {
		return nil, err
	}

	out := make([]MyRequestResponse, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		item := MyRequestResponse{
			ID:             r.ID,
			Name:           r.Name,
			Description:    r.Description,
			Category:       r.Category,
			Mission:        r.Mission,
			TargetAudience: r.TargetAudience,
			ActivitiesPlan: r.ActivitiesPlan,
			Status:         r.Status,
			CreatedAt:      r.CreatedAt,
		}

		decided := r.Status == StatusApproved || r.Status == StatusRejected
		visible := r.VisibleFrom != nil && !now.Before(*r.VisibleFrom)
		if decided && visible {
			item.DecisionMessage = &r.DecisionMessage
			item.DecidedAt = r.DecidedAt
			if r.Status == StatusApproved {
				item.LeaderEmail = &r.LeaderEmail
				item.LeaderPassword = &r.LeaderPassword
			}
		}

		out = append(out, item)
	}
	return out, nil
}

func (s *service) ListForReview(status string) ([]AdminRequestResponse, error) {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		status = StatusPending
	}
	return s.repo.GetByStatus(status)
}

// Decide records the university's verdict. Approval provisions the leader
// account and the club atomically.
func (s *service) Decide(reqID uint, req DecisionRequest) (string, error) {
	decision := req.Decision
	if decision != StatusApproved && decision != StatusRejected {
		return "", &ValidationError{Field: "decision", Message: "decision must be 'approved' or 'rejected'"}
	}

	leaderEmail := strings.ToLower(strings.TrimSpace(req.LeaderEmail))
	leaderPassword := strings.TrimSpace(req.LeaderPassword)
	if decision == StatusApproved && (leaderEmail == "" || leaderPassword == "") {
		return "", &ValidationError{Field: "leader_email", Message: "leader email and password are required for approval"}
	}

	cr, err := s.repo.GetByID(reqID)
	if err != nil {
		return "", err
	}
	if cr.Status != StatusPending {
		return "", ErrAlreadyDecided
	}

	now := s.now().UTC()
	cr.Status = decision
	cr.DecidedAt = &now
	cr.DecisionMessage = strings.TrimSpace(req.Message)
	if cr.DecisionMessage == "" {
		if decision == StatusApproved {
			cr.DecisionMessage = "Your club has been approved."
		} else {
			cr.DecisionMessage = "Your club proposal was not approved."
		}
	}

	if decision == StatusRejected {
		if err := s.repo.SaveDecision(cr); err != nil {
			return "", err
		}
		return fmt.Sprintf("Decision '%s' saved successfully.", decision), nil
	}

	if exists, err := s.repo.ClubNameExists(cr.Name); err != nil {
		return "", err
	} else if exists {
		return "", ErrClubNameTaken
	}
	if exists, err := s.repo.UserEmailExists(leaderEmail); err != nil {
		return "", err
	} else if exists {
		return "", ErrLeaderEmailUsed
	}

	cr.LeaderEmail = leaderEmail
	cr.LeaderPassword = leaderPassword

	hashed, err := bcrypt.GenerateFromPassword([]byte(leaderPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	leader := &auth.User{
		Name:     cr.Name + " Leader",
		Email:    leaderEmail,
		Password: string(hashed),
		Role:     auth.RoleLeader,
	}
	newClub := &club.Club{
		Name:        cr.Name,
		Description: cr.Description,
		Category:    cr.Category,
	}

	if err := s.repo.Approve(cr, leader, newClub); err != nil {
		return "", err
	}

	return fmt.Sprintf("Decision '%s' saved successfully.", decision), nil
}
