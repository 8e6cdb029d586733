package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/models"
	"belediyeBack/internal/push"
)

type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error)
	GetComplaintByID(ctx context.Context, id int64) (models.Complaint, error)
	GetComplaintByTrackingCode(ctx context.Context, code string) (models.Complaint, error)
	ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int, error)
	UpdateComplaintStatus(ctx context.Context, id int64, from, status, note string, resolvedAt *time.Time) error
	DeleteComplaint(ctx context.Context, id int64) error
}

// Broadcaster pushes live events to connected admin dashboards.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

const trackingCodeAttempts = 3

type ComplaintService struct {
	ComplaintRepo ComplaintStore
	Notifier      Notifier
	Broadcaster   Broadcaster
	Clock         clockwork.Clock
}

// NewTrackingCode returns 8 upper-case hex characters taken from a random UUID.
func NewTrackingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, author models.Identity, c models.Complaint) (models.Complaint, error) {
	c.ID = 0
	c.UserID = author.UserID
	c.Status = models.ComplaintStatusNew
	c.AdminNote = ""
	c.ResolvedAt = nil
	c.User = nil
	c.Category = strings.ToLower(strings.TrimSpace(c.Category))
	c.Description = strings.TrimSpace(c.Description)
	if err := validateStruct(c); err != nil {
		return models.Complaint{}, err
	}

	var (
		created models.Complaint
		err     error
	)
	for i := 0; i < trackingCodeAttempts; i++ {
		c.TrackingCode = NewTrackingCode()
		created, err = s.ComplaintRepo.CreateComplaint(ctx, c)
		var dup *models.DuplicateError
		if errors.As(err, &dup) && dup.Field == "tracking_code" {
			continue
		}
		break
	}
	if err != nil {
		return models.Complaint{}, err
	}

	if s.Broadcaster != nil {
		s.Broadcaster.Broadcast("complaint.created", created)
	}
	return created, nil
}

// GetComplaint returns a complaint to its author or to staff.
func (s *ComplaintService) GetComplaint(ctx context.Context, actor models.Identity, id int64) (models.Complaint, error) {
	c, err := s.ComplaintRepo.GetComplaintByID(ctx, id)
	if err != nil {
		return models.Complaint{}, err
	}
	if !actor.IsStaff() && c.UserID != actor.UserID {
		return models.Complaint{}, models.ErrForbidden
	}
	return c, nil
}

func (s *ComplaintService) ListOwn(ctx context.Context, author models.Identity, page models.Page) (models.List[models.Complaint], error) {
	return s.ListComplaints(ctx, models.ComplaintFilter{UserID: author.UserID, Page: page})
}

// Track exposes only the status of a complaint to anyone holding its code.
func (s *ComplaintService) Track(ctx context.Context, code string) (models.ComplaintTrack, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.ComplaintTrack{}, models.ErrNoRecord
	}
	c, err := s.ComplaintRepo.GetComplaintByTrackingCode(ctx, code)
	if err != nil {
		return models.ComplaintTrack{}, err
	}
	return models.ComplaintTrack{
		TrackingCode: c.TrackingCode,
		Category:     c.Category,
		Status:       c.Status,
		AdminNote:    c.AdminNote,
		CreatedAt:    c.CreatedAt,
		ResolvedAt:   c.ResolvedAt,
	}, nil
}

// WithdrawComplaint lets the author delete a complaint nobody has picked up yet.
func (s *ComplaintService) WithdrawComplaint(ctx context.Context, actor models.Identity, id int64) error {
	c, err := s.ComplaintRepo.GetComplaintByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != actor.UserID {
		return models.ErrForbidden
	}
	if c.Status != models.ComplaintStatusNew {
		return models.NewValidationError("status", "only new complaints can be withdrawn")
	}
	return s.ComplaintRepo.DeleteComplaint(ctx, id)
}

func (s *ComplaintService) ListComplaints(ctx context.Context, f models.ComplaintFilter) (models.List[models.Complaint], error) {
	items, total, err := s.ComplaintRepo.ListComplaints(ctx, f)
	if err != nil {
		return models.List[models.Complaint]{}, err
	}
	return toList(items, total), nil
}

// ReviewComplaint moves a complaint along its workflow and tells the author.
func (s *ComplaintService) ReviewComplaint(ctx context.Context, id int64, review models.ComplaintReview) (models.Complaint, error) {
	if err := validateStruct(review); err != nil {
		return models.Complaint{}, err
	}

	c, err := s.ComplaintRepo.GetComplaintByID(ctx, id)
	if err != nil {
		return models.Complaint{}, err
	}
	if !models.CanTransition(c.Status, review.Status) {
		return models.Complaint{}, models.NewValidationError("status",
			fmt.Sprintf("cannot change from %s to %s", c.Status, review.Status))
	}

	var resolvedAt *time.Time
	if review.Status == models.ComplaintStatusResolved {
		t := now(s.Clock)
		resolvedAt = &t
	}
	if err := s.ComplaintRepo.UpdateComplaintStatus(ctx, id, c.Status, review.Status, strings.TrimSpace(review.AdminNote), resolvedAt); err != nil {
		return models.Complaint{}, err
	}

	updated, err := s.ComplaintRepo.GetComplaintByID(ctx, id)
	if err != nil {
		return models.Complaint{}, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyUser(ctx, updated.UserID, push.Message{
			Title: "Başvurunuz güncellendi",
			Body:  fmt.Sprintf("%s numaralı başvurunuzun durumu: %s", updated.TrackingCode, complaintStatusLabel(updated.Status)),
			Link:  fmt.Sprintf("/complaints/%d", updated.ID),
			Data:  map[string]string{"type": "complaint", "status": updated.Status},
		})
	}
	if s.Broadcaster != nil {
		s.Broadcaster.Broadcast("complaint.updated", updated)
	}
	return updated, nil
}

func complaintStatusLabel(status string) string {
	switch status {
	case models.ComplaintStatusInReview:
		return "inceleniyor"
	case models.ComplaintStatusResolved:
		return "çözüldü"
	case models.ComplaintStatusRejected:
		return "reddedildi"
	}
	return "yeni"
}
