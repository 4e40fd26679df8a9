package club

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

type Repository interface {
	Create(club *Club) error
	GetByID(id uint) (*Club, error)
	GetByName(name string) (*Club, error)
	GetByLeaderID(leaderID uint) ([]Club, error)
	GetAll() ([]Club, error)
	GetAllWithLeaders() ([]AdminClubResponse, error)
	Delete(club *Club) error
	ClearLeader(clubID uint) error
	GetLeader(leaderID uint) (*auth.User, error)
	DemoteLeader(leaderID uint) error
	DeleteLeader(leaderID uint) error
	CountProposalsByUser(userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(club *Club) error {
	return r.db.Create(club).Error
}

func (r *repository) GetByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByName(name string) (*Club, error) {
	var c Club
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByLeaderID(leaderID uint) ([]Club, error) {
	var clubs []Club
	err := r.db.Where("leader_id = ?", leaderID).Find(&clubs).Error
	return clubs, err
}

func (r *repository) GetAll() ([]Club, error) {
	var clubs []Club
	err := r.db.Order("id ASC").Find(&clubs).Error
	return clubs, err
}

// GetAllWithLeaders joins leader accounts and counts events per club
func (r *repository) GetAllWithLeaders() ([]AdminClubResponse, error) {
	var out []AdminClubResponse
	err := r.db.
		Table("clubs c").
		Select(`
			c.id, c.name, c.description, c.category, c.leader_id,
			u.name as leader_name,
			u.email as leader_email,
			(SELECT COUNT(*) FROM events e WHERE e.club_id = c.id) as event_count
		`).
		Joins("LEFT JOIN users u ON c.leader_id = u.id").
		Order("c.id DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) Delete(club *Club) error {
	return r.db.Delete(club).Error
}

func (r *repository) ClearLeader(clubID uint) error {
	return r.db.Model(&Club{}).Where("id = ?", clubID).
		Update("leader_id", nil).Error
}

func (r *repository) GetLeader(leaderID uint) (*auth.User, error) {
	var u auth.User
	if err := r.db.First(&u, leaderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaderNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) DemoteLeader(leaderID uint) error {
	return r.db.Model(&auth.User{}).Where("id = ?", leaderID).
		Updates(map[string]interface{}{"role": string(auth.RoleParticipant), "club_id": nil}).Error
}

func (r *repository) DeleteLeader(leaderID uint) error {
	return r.db.Delete(&auth.User{}, leaderID).Error
}

func (r *repository) CountProposalsByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("club_requests").Where("proposer_id = ?", userID).Count(&count).Error
	return count, err
}
