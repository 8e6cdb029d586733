package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/models"
)

type DashboardService struct {
	Ads interface {
		CountByStatus(ctx context.Context, status string) (int, error)
	}
	Complaints interface {
		CountByStatus(ctx context.Context, status string) (int, error)
	}
	Taxi interface {
		CountActive(ctx context.Context) (int, error)
	}
	Pharmacies interface {
		DutiesOn(ctx context.Context, date string) ([]models.PharmacyDuty, error)
	}
	Announcements interface {
		CountPublished(ctx context.Context, now time.Time) (int, error)
	}
	Campaigns interface {
		CountRunning(ctx context.Context, now time.Time) (int, error)
	}
	Clock    clockwork.Clock
	Location *time.Location
}

func (s *DashboardService) Summary(ctx context.Context) (models.Dashboard, error) {
	var (
		d   models.Dashboard
		err error
	)
	t := now(s.Clock)

	if d.PendingAds, err = s.Ads.CountByStatus(ctx, models.AdStatusPending); err != nil {
		return models.Dashboard{}, err
	}
	if d.NewComplaints, err = s.Complaints.CountByStatus(ctx, models.ComplaintStatusNew); err != nil {
		return models.Dashboard{}, err
	}
	if d.ActiveTaxiDrivers, err = s.Taxi.CountActive(ctx); err != nil {
		return models.Dashboard{}, err
	}

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	duties, err := s.Pharmacies.DutiesOn(ctx, t.In(loc).Format(time.DateOnly))
	if err != nil {
		return models.Dashboard{}, err
	}
	d.PharmaciesOnDutyToday = len(duties)

	if d.PublishedAnnouncements, err = s.Announcements.CountPublished(ctx, t); err != nil {
		return models.Dashboard{}, err
	}
	if d.ActiveCampaigns, err = s.Campaigns.CountRunning(ctx, t); err != nil {
		return models.Dashboard{}, err
	}
	return d, nil
}
