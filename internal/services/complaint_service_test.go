package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
	"belediyeBack/internal/push"
)

type fakeComplaintStore struct {
	items      map[int64]models.Complaint
	nextID     int64
	takenCodes int
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{items: map[int64]models.Complaint{}}
}

func (s *fakeComplaintStore) CreateComplaint(_ context.Context, c models.Complaint) (models.Complaint, error) {
	if s.takenCodes > 0 {
		s.takenCodes--
		return models.Complaint{}, &models.DuplicateError{Field: "tracking_code"}
	}
	s.nextID++
	c.ID = s.nextID
	s.items[c.ID] = c
	return c, nil
}

func (s *fakeComplaintStore) GetComplaintByID(_ context.Context, id int64) (models.Complaint, error) {
	c, ok := s.items[id]
	if !ok {
		return models.Complaint{}, models.ErrNoRecord
	}
	return c, nil
}

func (s *fakeComplaintStore) GetComplaintByTrackingCode(_ context.Context, code string) (models.Complaint, error) {
	for _, c := range s.items {
		if c.TrackingCode == code {
			return c, nil
		}
	}
	return models.Complaint{}, models.ErrNoRecord
}

func (s *fakeComplaintStore) ListComplaints(_ context.Context, f models.ComplaintFilter) ([]models.Complaint, int, error) {
	var out []models.Complaint
	for _, c := range s.items {
		if f.UserID != 0 && c.UserID != f.UserID {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *fakeComplaintStore) UpdateComplaintStatus(_ context.Context, id int64, from, status, note string, resolvedAt *time.Time) error {
	c, ok := s.items[id]
	if !ok {
		return models.ErrNoRecord
	}
	if c.Status != from {
		return models.ErrStaleStatus
	}
	c.Status, c.AdminNote, c.ResolvedAt = status, note, resolvedAt
	s.items[id] = c
	return nil
}

func (s *fakeComplaintStore) DeleteComplaint(_ context.Context, id int64) error {
	if _, ok := s.items[id]; !ok {
		return models.ErrNoRecord
	}
	delete(s.items, id)
	return nil
}

type recordingNotifier struct {
	all  []push.Message
	user map[int64][]push.Message
}

func (n *recordingNotifier) NotifyAll(_ context.Context, msg push.Message) {
	n.all = append(n.all, msg)
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID int64, msg push.Message) {
	if n.user == nil {
		n.user = map[int64][]push.Message{}
	}
	n.user[userID] = append(n.user[userID], msg)
}

type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) Broadcast(event string, _ interface{}) {
	b.events = append(b.events, event)
}

var (
	citizen  = models.Identity{UserID: 10, Role: models.RoleCitizen}
	neighbor = models.Identity{UserID: 11, Role: models.RoleCitizen}
	editor   = models.Identity{UserID: 2, Role: models.RoleEditor}
)

func validComplaint() models.Complaint {
	return models.Complaint{Category: "Road", Description: "Sokak lambası üç gündür yanmıyor."}
}

func TestCreateComplaintAssignsCodeAndBroadcasts(t *testing.T) {
	store := newFakeComplaintStore()
	hub := &recordingBroadcaster{}
	svc := &ComplaintService{ComplaintRepo: store, Broadcaster: hub}

	c, err := svc.CreateComplaint(context.Background(), citizen, validComplaint())

	require.NoError(t, err)
	assert.Equal(t, citizen.UserID, c.UserID)
	assert.Equal(t, models.ComplaintStatusNew, c.Status)
	assert.Equal(t, "road", c.Category)
	assert.Regexp(t, `^[0-9A-F]{8}$`, c.TrackingCode)
	assert.Equal(t, []string{"complaint.created"}, hub.events)
}

func TestCreateComplaintRetriesTakenTrackingCode(t *testing.T) {
	store := newFakeComplaintStore()
	store.takenCodes = 2
	svc := &ComplaintService{ComplaintRepo: store}

	_, err := svc.CreateComplaint(context.Background(), citizen, validComplaint())
	require.NoError(t, err)

	store.takenCodes = trackingCodeAttempts
	_, err = svc.CreateComplaint(context.Background(), citizen, validComplaint())
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestCreateComplaintRequiresDescription(t *testing.T) {
	svc := &ComplaintService{ComplaintRepo: newFakeComplaintStore()}

	_, err := svc.CreateComplaint(context.Background(), citizen, models.Complaint{Category: "road", Description: "kısa"})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "description")
}

func TestGetComplaintOwnership(t *testing.T) {
	store := newFakeComplaintStore()
	svc := &ComplaintService{ComplaintRepo: store}
	c, err := svc.CreateComplaint(context.Background(), citizen, validComplaint())
	require.NoError(t, err)

	_, err = svc.GetComplaint(context.Background(), citizen, c.ID)
	assert.NoError(t, err)
	_, err = svc.GetComplaint(context.Background(), editor, c.ID)
	assert.NoError(t, err)
	_, err = svc.GetComplaint(context.Background(), neighbor, c.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestReviewComplaintTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"new to in_review", models.ComplaintStatusNew, models.ComplaintStatusInReview, true},
		{"new to rejected", models.ComplaintStatusNew, models.ComplaintStatusRejected, true},
		{"new to resolved", models.ComplaintStatusNew, models.ComplaintStatusResolved, false},
		{"in_review to resolved", models.ComplaintStatusInReview, models.ComplaintStatusResolved, true},
		{"resolved to in_review", models.ComplaintStatusResolved, models.ComplaintStatusInReview, false},
		{"rejected to resolved", models.ComplaintStatusRejected, models.ComplaintStatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeComplaintStore()
			store.items[1] = models.Complaint{ID: 1, UserID: citizen.UserID, TrackingCode: "ABCD1234", Status: tt.from}
			notifier := &recordingNotifier{}
			svc := &ComplaintService{ComplaintRepo: store, Notifier: notifier}

			c, err := svc.ReviewComplaint(context.Background(), 1, models.ComplaintReview{Status: tt.to, AdminNote: "ekip yönlendirildi"})

			if !tt.allowed {
				var ve *models.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.from, store.items[1].Status)
				assert.Empty(t, notifier.user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, c.Status)
			assert.Equal(t, "ekip yönlendirildi", c.AdminNote)
			require.Len(t, notifier.user[citizen.UserID], 1)
			assert.Equal(t, "/complaints/1", notifier.user[citizen.UserID][0].Link)
		})
	}
}

func TestReviewComplaintStampsResolvedAt(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
	store := newFakeComplaintStore()
	store.items[1] = models.Complaint{ID: 1, UserID: citizen.UserID, Status: models.ComplaintStatusInReview}
	svc := &ComplaintService{ComplaintRepo: store, Clock: clock}

	c, err := svc.ReviewComplaint(context.Background(), 1, models.ComplaintReview{Status: models.ComplaintStatusResolved})

	require.NoError(t, err)
	require.NotNil(t, c.ResolvedAt)
	assert.Equal(t, clock.Now(), *c.ResolvedAt)
}

func TestWithdrawComplaint(t *testing.T) {
	store := newFakeComplaintStore()
	store.items[1] = models.Complaint{ID: 1, UserID: citizen.UserID, Status: models.ComplaintStatusNew}
	store.items[2] = models.Complaint{ID: 2, UserID: citizen.UserID, Status: models.ComplaintStatusInReview}
	svc := &ComplaintService{ComplaintRepo: store}
	ctx := context.Background()

	assert.ErrorIs(t, svc.WithdrawComplaint(ctx, neighbor, 1), models.ErrForbidden)

	var ve *models.ValidationError
	assert.ErrorAs(t, svc.WithdrawComplaint(ctx, citizen, 2), &ve)

	require.NoError(t, svc.WithdrawComplaint(ctx, citizen, 1))
	assert.NotContains(t, store.items, int64(1))
}

func TestTrackHidesPersonalData(t *testing.T) {
	store := newFakeComplaintStore()
	store.items[1] = models.Complaint{
		ID: 1, UserID: citizen.UserID, TrackingCode: "ABCD1234", Category: "road",
		Status: models.ComplaintStatusInReview, User: &models.ComplaintUser{Name: "Ayşe", Phone: "+905550000000"},
	}
	svc := &ComplaintService{ComplaintRepo: store}

	track, err := svc.Track(context.Background(), " abcd1234 ")

	require.NoError(t, err)
	assert.Equal(t, models.ComplaintTrack{TrackingCode: "ABCD1234", Category: "road", Status: models.ComplaintStatusInReview}, track)

	_, err = svc.Track(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrNoRecord)
}

// staleComplaintStore serves the status a reviewer saw before someone else moved the complaint.
type staleComplaintStore struct {
	*fakeComplaintStore
	seen string
}

func (s staleComplaintStore) GetComplaintByID(ctx context.Context, id int64) (models.Complaint, error) {
	c, err := s.fakeComplaintStore.GetComplaintByID(ctx, id)
	c.Status = s.seen
	return c, err
}

func TestReviewComplaintConcurrentChange(t *testing.T) {
	store := newFakeComplaintStore()
	store.items[1] = models.Complaint{ID: 1, UserID: citizen.UserID, Status: models.ComplaintStatusRejected}
	notifier := &recordingNotifier{}
	svc := &ComplaintService{
		ComplaintRepo: staleComplaintStore{fakeComplaintStore: store, seen: models.ComplaintStatusNew},
		Notifier:      notifier,
	}

	_, err := svc.ReviewComplaint(context.Background(), 1, models.ComplaintReview{Status: models.ComplaintStatusInReview})

	assert.ErrorIs(t, err, models.ErrStaleStatus)
	assert.Equal(t, models.ComplaintStatusRejected, store.items[1].Status)
	assert.Empty(t, notifier.user)
}
