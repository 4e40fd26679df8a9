package registration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/event"
)

type fakeRegRepo struct {
	regs      map[uint]*Registration
	nextID    uint
	createErr error
}

func newFakeRegRepo() *fakeRegRepo {
	return &fakeRegRepo{regs: map[uint]*Registration{}, nextID: 1}
}

func (f *fakeRegRepo) Create(reg *Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = f.nextID
	f.nextID++
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegRepo) Save(reg *Registration) error {
	cp := *reg
	f.regs[reg.ID] = &cp
	return nil
}

func (f *fakeRegRepo) GetByID(id uint) (*Registration, error) {
	r, ok := f.regs[id]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegRepo) GetByEventAndEmail(eventID uint, email string) (*Registration, error) {
	for _, r := range f.regs {
		if r.EventID == eventID && r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrRegistrationNotFound
}

func (f *fakeRegRepo) AllActive() ([]Registration, error) {
	var out []Registration
	for _, r := range f.regs {
		if !r.Cancelled {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRegRepo) ActiveByEvent(uint) ([]RosterEntry, error)  { return nil, nil }
func (f *fakeRegRepo) ActiveByEmail(string) ([]Registration, error) { return nil, nil }
func (f *fakeRegRepo) AllByEmail(string) ([]Registration, error)    { return nil, nil }

func (f *fakeRegRepo) CheckIn(regID uint, at time.Time) (int64, error) {
	r, ok := f.regs[regID]
	if !ok || r.CheckedIn || r.Cancelled {
		return 0, nil
	}
	r.CheckedIn = true
	t := at
	r.CheckedInAt = &t
	return 1, nil
}

type fakeEventRepo struct {
	events map[uint]*event.Event
	owners map[uint]uint // eventID -> leaderID
}

func (f *fakeEventRepo) Create(*event.Event) error { return nil }
func (f *fakeEventRepo) GetByID(id uint) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}
func (f *fakeEventRepo) GetAll() ([]event.Event, error)                  { return nil, nil }
func (f *fakeEventRepo) Browse(event.BrowseFilter) ([]event.Event, error) { return nil, nil }
func (f *fakeEventRepo) Update(*event.Event) error                       { return nil }
func (f *fakeEventRepo) DeleteCascade(uint) error                        { return nil }
func (f *fakeEventRepo) LeaderOwnsClub(uint, uint) (bool, error)         { return false, nil }
func (f *fakeEventRepo) LeaderOwnsEvent(leaderID, eventID uint) (bool, error) {
	return f.owners[eventID] == leaderID, nil
}
func (f *fakeEventRepo) LeaderEvents(uint) ([]event.LeaderEventResponse, error) { return nil, nil }
func (f *fakeEventRepo) IncrementViews(uint) error                              { return nil }
func (f *fakeEventRepo) Exists(eventID uint) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

type fakeUsers struct {
	users map[uint]*auth.User
}

func (f *fakeUsers) GetByID(id uint) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

type fakePublisher struct {
	messages []ConfirmationMessage
}

func (f *fakePublisher) PublishConfirmation(_ context.Context, msg ConfirmationMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func newTestService(t *testing.T) (*service, *fakeRegRepo, *fakeEventRepo, *fakePublisher) {
	t.Helper()

	orig := config.UploadPath
	config.UploadPath = t.TempDir()
	t.Cleanup(func() { config.UploadPath = orig })

	regRepo := newFakeRegRepo()
	evtRepo := &fakeEventRepo{
		events: map[uint]*event.Event{
			1: {
				ID: 1, ClubID: 5, Title: "Robotics Expo",
				Date:      time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
				StartTime: "14:00", Location: "Lab 3",
			},
		},
		owners: map[uint]uint{1: 100},
	}
	users := &fakeUsers{users: map[uint]*auth.User{
		7: {ID: 7, Name: "Ada", Email: "ada@example.edu", Role: auth.RoleParticipant},
	}}
	pub := &fakePublisher{}

	svc := &service{
		repo:      regRepo,
		events:    evtRepo,
		users:     users,
		publisher: pub,
		now:       func() time.Time { return time.Date(2026, 4, 20, 13, 0, 0, 0, time.UTC) },
	}
	return svc, regRepo, evtRepo, pub
}

func TestRegisterCreatesAndPublishes(t *testing.T) {
	svc, _, _, pub := newTestService(t)

	result, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "ada@example.edu", result.Registration.Email)
	assert.NotEmpty(t, result.Registration.QRCodePath)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "Robotics Expo", pub.messages[0].EventTitle)
	assert.False(t, pub.messages[0].Reactivated)
}

func TestRegisterDuplicateRejected(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterRaceLoserGetsAlreadyRegistered(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	// Interleaving where the duplicate check sees no row but a concurrent
	// register wins the insert: the unique index rejects ours.
	repo.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Register(context.Background(), 7, 1)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterUnknownEvent(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), 7, 999)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestCancelThenReregisterReactivatesSameRow(t *testing.T) {
	svc, repo, _, pub := newTestService(t)

	first, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	firstID := first.Registration.ID

	require.NoError(t, svc.Cancel(1, "ada@example.edu"))
	stored, err := repo.GetByID(firstID)
	require.NoError(t, err)
	assert.True(t, stored.Cancelled)

	second, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, firstID, second.Registration.ID)
	assert.False(t, second.Registration.Cancelled)

	require.Len(t, pub.messages, 2)
	assert.True(t, pub.messages[1].Reactivated)
}

func TestCancelMissingOrAlreadyCancelled(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	assert.ErrorIs(t, svc.Cancel(1, "nobody@example.edu"), ErrRegistrationNotFound)

	_, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(1, "ada@example.edu"))

	assert.ErrorIs(t, svc.Cancel(1, "ada@example.edu"), ErrRegistrationNotFound)
}

func TestCancelAfterCheckInRejected(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	result, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)

	payload := BuildQRPayload(result.Registration.ID, 1, "Ada", "ada@example.edu")
	_, err = svc.CheckIn(100, payload)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(1, "ada@example.edu"), ErrCannotCancelCheckedIn)
}

func TestCheckInLifecycle(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	result, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	regID := result.Registration.ID

	payload := BuildQRPayload(regID, 1, "Ada", "ada@example.edu")

	first, err := svc.CheckIn(100, payload)
	require.NoError(t, err)
	assert.Equal(t, "Check-in successful", first.Message)
	assert.Equal(t, "Robotics Expo", first.EventTitle)
	assert.False(t, first.Already)
	require.NotNil(t, first.CheckedInAt)

	second, err := svc.CheckIn(100, payload)
	require.NoError(t, err)
	assert.True(t, second.Already)
	assert.Equal(t, first.CheckedInAt.Unix(), second.CheckedInAt.Unix())
}

func TestCheckInErrorTaxonomy(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	result, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	regID := result.Registration.ID
	payload := BuildQRPayload(regID, 1, "Ada", "ada@example.edu")

	t.Run("invalid format caught before lookup", func(t *testing.T) {
		_, err := svc.CheckIn(100, "not a qr code")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("unknown registration", func(t *testing.T) {
		_, err := svc.CheckIn(100, "REG:9999|EVT:1|NAME:X|EMAIL:x@y.z")
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("cross-club leader forbidden", func(t *testing.T) {
		_, err := svc.CheckIn(200, payload)
		assert.ErrorIs(t, err, ErrNotEventOwner)
	})

	t.Run("cancelled registration rejected explicitly", func(t *testing.T) {
		require.NoError(t, svc.Cancel(1, "ada@example.edu"))
		_, err := svc.CheckIn(100, payload)
		assert.ErrorIs(t, err, ErrCancelledRegistration)
	})
}

func TestCheckInAfterEventDeleted(t *testing.T) {
	svc, repo, evtRepo, _ := newTestService(t)

	result, err := svc.Register(context.Background(), 7, 1)
	require.NoError(t, err)
	regID := result.Registration.ID
	payload := BuildQRPayload(regID, 1, "Ada", "ada@example.edu")

	// Deleting an event cascades to its registrations, so a stale QR code
	// scanned afterwards resolves to nothing.
	delete(evtRepo.events, 1)
	for id, r := range repo.regs {
		if r.EventID == 1 {
			delete(repo.regs, id)
		}
	}

	_, err = svc.CheckIn(100, payload)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestGuestRegistration(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	result, err := svc.RegisterGuest(context.Background(), GuestRegisterRequest{
		EventID: 1, ParticipantName: "Grace", Email: "Grace@Example.edu",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "grace@example.edu", result.Registration.Email)
	assert.Nil(t, result.Registration.UserID)
}
