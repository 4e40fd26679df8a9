package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events     map[uint]*Event
	ownedClubs map[uint]uint // clubID -> leaderID
	views      map[uint]int64
	nextID     uint
	deleted    []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:     map[uint]*Event{},
		ownedClubs: map[uint]uint{},
		views:      map[uint]int64{},
		nextID:     1,
	}
}

func (f *fakeRepo) Create(e *Event) error {
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) GetAll() ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) Browse(BrowseFilter) ([]Event, error) { return f.GetAll() }

func (f *fakeRepo) Update(e *Event) error {
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCascade(eventID uint) error {
	delete(f.events, eventID)
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeRepo) LeaderOwnsClub(leaderID, clubID uint) (bool, error) {
	return f.ownedClubs[clubID] == leaderID, nil
}

func (f *fakeRepo) LeaderOwnsEvent(leaderID, eventID uint) (bool, error) {
	e, ok := f.events[eventID]
	if !ok {
		return false, nil
	}
	return f.ownedClubs[e.ClubID] == leaderID, nil
}

func (f *fakeRepo) LeaderEvents(uint) ([]LeaderEventResponse, error) { return nil, nil }

func (f *fakeRepo) IncrementViews(eventID uint) error {
	f.views[eventID]++
	return nil
}

func (f *fakeRepo) Exists(eventID uint) (bool, error) {
	_, ok := f.events[eventID]
	return ok, nil
}

func newTestService(repo *fakeRepo, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestCreateEventValidationOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10
	svc := newTestService(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		req       CreateEventRequest
		wantField string
	}{
		{
			name:      "short title reported first",
			req:       CreateEventRequest{ClubID: 1, Title: "ab", Date: "bad", Time: "bad", Location: ""},
			wantField: "title",
		},
		{
			name:      "bad date reported before bad time",
			req:       CreateEventRequest{ClubID: 1, Title: "Chess Night", Date: "03/15/2026", Time: "bad", Location: ""},
			wantField: "date",
		},
		{
			name:      "bad time reported before missing location",
			req:       CreateEventRequest{ClubID: 1, Title: "Chess Night", Date: "2026-03-15", Time: "7pm", Location: ""},
			wantField: "time",
		},
		{
			name:      "missing location last",
			req:       CreateEventRequest{ClubID: 1, Title: "Chess Night", Date: "2026-03-15", Time: "19:00", Location: "  "},
			wantField: "location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(10, tt.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestCreateEventRequiresOwnership(t *testing.T) {
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10
	svc := newTestService(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	req := CreateEventRequest{
		ClubID: 1, Title: "Chess Night", Date: "2026-03-15",
		Time: "19:00", Location: "Hall B",
	}

	_, err := svc.CreateEvent(99, req)
	assert.ErrorIs(t, err, ErrNotOwner)

	resp, err := svc.CreateEvent(10, req)
	require.NoError(t, err)
	assert.Equal(t, "Chess Night", resp.Title)
	assert.Equal(t, "2026-03-15", resp.Date)
}

func TestUpdateEventPolicyWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10

	tooClose := &Event{ClubID: 1, Title: "Soon", Date: now.Add(10 * time.Hour), StartTime: "09:00", Location: "A"}
	require.NoError(t, repo.Create(tooClose))
	farOut := &Event{ClubID: 1, Title: "Later", Date: now.Add(72 * time.Hour), StartTime: "09:00", Location: "A"}
	require.NoError(t, repo.Create(farOut))

	svc := newTestService(repo, now)
	loc := "New Hall"

	_, err := svc.UpdateEvent(10, tooClose.ID, UpdateEventRequest{Location: &loc})
	var pe *PolicyError
	require.ErrorAs(t, err, &pe)

	resp, err := svc.UpdateEvent(10, farOut.ID, UpdateEventRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "New Hall", resp.Location)
}

func TestUpdateEventRejectsImminentNewDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10

	e := &Event{ClubID: 1, Title: "Gala", Date: now.Add(5 * 24 * time.Hour), StartTime: "18:00", Location: "A"}
	require.NoError(t, repo.Create(e))

	svc := newTestService(repo, now)

	today := now.Format(DateLayout)
	_, err := svc.UpdateEvent(10, e.ID, UpdateEventRequest{Date: &today})
	var pe *PolicyError
	assert.ErrorAs(t, err, &pe)
}

func TestDeleteEventPolicyWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10

	sixDays := &Event{ClubID: 1, Title: "Six", Date: now.Add(6 * 24 * time.Hour), StartTime: "10:00", Location: "A"}
	require.NoError(t, repo.Create(sixDays))
	sevenDays := &Event{ClubID: 1, Title: "Seven", Date: now.Add(7 * 24 * time.Hour), StartTime: "10:00", Location: "A"}
	require.NoError(t, repo.Create(sevenDays))

	svc := newTestService(repo, now)

	var pe *PolicyError
	err := svc.DeleteEvent(10, sixDays.ID)
	require.ErrorAs(t, err, &pe)

	require.NoError(t, svc.DeleteEvent(10, sevenDays.ID))
	assert.Equal(t, []uint{sevenDays.ID}, repo.deleted)
}

func TestDeleteEventCrossClubForbidden(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10
	repo.ownedClubs[2] = 20

	e := &Event{ClubID: 2, Title: "Other", Date: now.Add(30 * 24 * time.Hour), StartTime: "10:00", Location: "A"}
	require.NoError(t, repo.Create(e))

	svc := newTestService(repo, now)
	assert.ErrorIs(t, svc.DeleteEvent(10, e.ID), ErrNotOwner)
}

func TestTrackViewsDeduplicatesAndSkipsUnknown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepo()
	repo.ownedClubs[1] = 10

	e := &Event{ClubID: 1, Title: "Viewed", Date: now.Add(48 * time.Hour), StartTime: "10:00", Location: "A"}
	require.NoError(t, repo.Create(e))

	svc := newTestService(repo, now)

	require.NoError(t, svc.TrackViews([]uint{e.ID, e.ID, 999}))
	assert.Equal(t, int64(1), repo.views[e.ID])
	assert.Zero(t, repo.views[999])
}
