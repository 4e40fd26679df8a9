package club

import (
	"errors"
	"fmt"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

var (
	ErrClubNotFound   = errors.New("club not found")
	ErrLeaderNotFound = errors.New("leader account not found")
	ErrNoLeader       = errors.New("club has no leader assigned")
)

type Service interface {
	ListClubs(role auth.Role, userID uint) ([]Club, error)
	ListClubsForAdmin() ([]AdminClubResponse, error)
	GetClub(id uint) (*Club, error)
	DeleteClub(id uint) (string, error)
	RevokeLeader(clubID uint) (string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListClubs returns the caller's clubs for leaders, all clubs otherwise
func (s *service) ListClubs(role auth.Role, userID uint) ([]Club, error) {
	switch role {
	case auth.RoleLeader:
		return s.repo.GetByLeaderID(userID)
	case auth.RoleParticipant, auth.RoleUniversity:
		return s.repo.GetAll()
	default:
		return s.repo.GetAll()
	}
}

func (s *service) ListClubsForAdmin() ([]AdminClubResponse, error) {
	return s.repo.GetAllWithLeaders()
}

func (s *service) GetClub(id uint) (*Club, error) {
	return s.repo.GetByID(id)
}

func (s *service) DeleteClub(id uint) (string, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(c); err != nil {
		return "", err
	}
	return fmt.Sprintf("Club '%s' deleted successfully.", c.Name), nil
}

// RevokeLeader strips leader access from a club. Accounts that originally
// proposed a club are kept and demoted to participant; accounts created
// purely as leader credentials are deleted.
func (s *service) RevokeLeader(clubID uint) (string, error) {
	c, err := s.repo.GetByID(clubID)
	if err != nil {
		return "", err
	}
	if c.LeaderID == nil {
		return "", ErrNoLeader
	}

	leader, err := s.repo.GetLeader(*c.LeaderID)
	if err != nil {
		return "", err
	}

	if err := s.repo.ClearLeader(c.ID); err != nil {
		return "", err
	}

	proposals, err := s.repo.CountProposalsByUser(leader.ID)
	if err != nil {
		return "", err
	}

	if proposals > 0 {
		if err := s.repo.DemoteLeader(leader.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Leader access revoked. Account '%s' has been changed to participant role.", leader.Email), nil
	}

	if err := s.repo.DeleteLeader(leader.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Leader access revoked. Account '%s' has been deleted.", leader.Email), nil
}
