package clubrequest

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/club"
)

type Repository interface {
	Create(req *ClubRequest) error
	GetByID(id uint) (*ClubRequest, error)
	GetByProposer(proposerID uint) ([]ClubRequest, error)
	GetByStatus(status string) ([]AdminRequestResponse, error)
	HasPendingWithName(name string) (bool, error)
	ClubNameExists(name string) (bool, error)
	UserEmailExists(email string) (bool, error)
	// Approve persists the decision, the new leader account and the new
	// club in one transaction
	Approve(req *ClubRequest, leader *auth.User, newClub *club.Club) error
	SaveDecision(req *ClubRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(req *ClubRequest) error {
	return r.db.Create(req).Error
}

func (r *repository) GetByID(id uint) (*ClubRequest, error) {
	var req ClubRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) GetByProposer(proposerID uint) ([]ClubRequest, error) {
	var reqs []ClubRequest
	err := r.db.Where("proposer_id = ?", proposerID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) GetByStatus(status string) ([]AdminRequestResponse, error) {
	var out []AdminRequestResponse
	query := r.db.
		Table("club_requests cr").
		Select(`
			cr.id, cr.name, cr.description, cr.category, cr.mission,
			cr.target_audience, cr.activities_plan, cr.status,
			cr.created_at, cr.decided_at, cr.decision_message as decision_msg,
			u.name as proposer_name,
			u.email as proposer_email
		`).
		Joins("LEFT JOIN users u ON cr.proposer_id = u.id")

	if status != "" {
		query = query.Where("cr.status = ?", status)
	}

	err := query.Order("cr.created_at ASC").Find(&out).Error
	return out, err
}

func (r *repository) HasPendingWithName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&ClubRequest{}).
		Where("name = ? AND status = ?", name, StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ClubNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&club.Club{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *repository) UserEmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&auth.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *repository) Approve(req *ClubRequest, leader *auth.User, newClub *club.Club) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(leader).Error; err != nil {
			return err
		}

		newClub.LeaderID = &leader.ID
		if err := tx.Create(newClub).Error; err != nil {
			return err
		}

		if err := tx.Model(&auth.User{}).Where("id = ?", leader.ID).
			Update("club_id", newClub.ID).Error; err != nil {
			return err
		}
		leader.ClubID = &newClub.ID

		return tx.Save(req).Error
	})
}

func (r *repository) SaveDecision(req *ClubRequest) error {
	return r.db.Save(req).Error
}
