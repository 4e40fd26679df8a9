package clubrequest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/club"
)

type fakeRepo struct {
	requests   map[uint]*ClubRequest
	nextID     uint
	clubNames  map[string]bool
	userEmails map[string]bool
	approved   []struct {
		leader *auth.User
		club   *club.Club
	}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		requests:   map[uint]*ClubRequest{},
		nextID:     1,
		clubNames:  map[string]bool{},
		userEmails: map[string]bool{},
	}
}

func (f *fakeRepo) Create(req *ClubRequest) error {
	req.ID = f.nextID
	f.nextID++
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*ClubRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetByProposer(proposerID uint) ([]ClubRequest, error) {
	var out []ClubRequest
	for _, r := range f.requests {
		if r.ProposerID == proposerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByStatus(string) ([]AdminRequestResponse, error) { return nil, nil }

func (f *fakeRepo) HasPendingWithName(name string) (bool, error) {
	for _, r := range f.requests {
		if r.Name == name && r.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ClubNameExists(name string) (bool, error) {
	return f.clubNames[name], nil
}

func (f *fakeRepo) UserEmailExists(email string) (bool, error) {
	return f.userEmails[email], nil
}

func (f *fakeRepo) Approve(req *ClubRequest, leader *auth.User, newClub *club.Club) error {
	f.approved = append(f.approved, struct {
		leader *auth.User
		club   *club.Club
	}{leader, newClub})
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRepo) SaveDecision(req *ClubRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func newTestService(repo *fakeRepo, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestCreateRequestValidation(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepo(), now)

	_, err := svc.CreateRequest(1, CreateRequest{Name: "ab", Description: "long enough text"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = svc.CreateRequest(1, CreateRequest{Name: "Chess Club", Description: "short"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "description", ve.Field)
}

func TestCreateRequestSetsVisibilityWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	id, err := svc.CreateRequest(1, CreateRequest{Name: "Chess Club", Description: "we play chess weekly"})
	require.NoError(t, err)

	stored := repo.requests[id]
	require.NotNil(t, stored.VisibleFrom)
	assert.Equal(t, now.Add(5*24*time.Hour), *stored.VisibleFrom)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestCreateRequestDuplicates(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.clubNames["Robotics Club"] = true
	svc := newTestService(repo, now)

	_, err := svc.CreateRequest(1, CreateRequest{Name: "Robotics Club", Description: "we build robots"})
	assert.ErrorIs(t, err, ErrClubNameTaken)

	_, err = svc.CreateRequest(1, CreateRequest{Name: "Chess Club", Description: "we play chess weekly"})
	require.NoError(t, err)

	_, err = svc.CreateRequest(2, CreateRequest{Name: "Chess Club", Description: "we also play chess"})
	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestMyRequestsHidesDecisionUntilVisible(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	id, err := svc.CreateRequest(1, CreateRequest{Name: "Chess Club", Description: "we play chess weekly"})
	require.NoError(t, err)

	_, err = svc.Decide(id, DecisionRequest{
		Decision: StatusApproved, LeaderEmail: "chess-leader@example.edu", LeaderPassword: "secret123",
	})
	require.NoError(t, err)

	// Before the window opens the proposer sees status but no details
	before, err := svc.MyRequests(1, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, StatusApproved, before[0].Status)
	assert.Nil(t, before[0].DecisionMessage)
	assert.Nil(t, before[0].LeaderEmail)

	// After the window the decision and issued credentials appear
	after, err := svc.MyRequests(1, now.Add(6*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, after, 1)
	require.NotNil(t, after[0].DecisionMessage)
	assert.Equal(t, "Your club has been approved.", *after[0].DecisionMessage)
	require.NotNil(t, after[0].LeaderEmail)
	assert.Equal(t, "chess-leader@example.edu", *after[0].LeaderEmail)
}

func TestDecideApprovalCreatesLeaderAndClub(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	id, err := svc.CreateRequest(1, CreateRequest{
		Name: "Chess Club", Description: "we play chess weekly", Category: "Games",
	})
	require.NoError(t, err)

	_, err = svc.Decide(id, DecisionRequest{
		Decision: StatusApproved, LeaderEmail: "chess-leader@example.edu", LeaderPassword: "secret123",
	})
	require.NoError(t, err)

	require.Len(t, repo.approved, 1)
	assert.Equal(t, auth.RoleLeader, repo.approved[0].leader.Role)
	assert.Equal(t, "chess-leader@example.edu", repo.approved[0].leader.Email)
	assert.NotEqual(t, "secret123", repo.approved[0].leader.Password) // hashed
	assert.Equal(t, "Chess Club", repo.approved[0].club.Name)
	assert.Equal(t, "Games", repo.approved[0].club.Category)
}

func TestDecideGuards(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	svc := newTestService(repo, now)

	id, err := svc.CreateRequest(1, CreateRequest{Name: "Chess Club", Description: "we play chess weekly"})
	require.NoError(t, err)

	t.Run("invalid decision value", func(t *testing.T) {
		_, err := svc.Decide(id, DecisionRequest{Decision: "maybe"})
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("approval requires credentials", func(t *testing.T) {
		_, err := svc.Decide(id, DecisionRequest{Decision: StatusApproved})
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("leader email already in use", func(t *testing.T) {
		repo.userEmails["taken@example.edu"] = true
		_, err := svc.Decide(id, DecisionRequest{
			Decision: StatusApproved, LeaderEmail: "taken@example.edu", LeaderPassword: "secret123",
		})
		assert.ErrorIs(t, err, ErrLeaderEmailUsed)
	})

	t.Run("already decided", func(t *testing.T) {
		_, err := svc.Decide(id, DecisionRequest{Decision: StatusRejected})
		require.NoError(t, err)
		_, err = svc.Decide(id, DecisionRequest{Decision: StatusRejected})
		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})
}
