package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

type statusCounter map[string]int

func (c statusCounter) CountByStatus(_ context.Context, status string) (int, error) {
	return c[status], nil
}

type countStub struct {
	n   int
	err error
	at  time.Time
}

func (c *countStub) CountActive(context.Context) (int, error) { return c.n, c.err }

func (c *countStub) CountPublished(_ context.Context, now time.Time) (int, error) {
	c.at = now
	return c.n, c.err
}

func (c *countStub) CountRunning(_ context.Context, now time.Time) (int, error) {
	c.at = now
	return c.n, c.err
}

type dutiesStub struct{ date string }

func (d *dutiesStub) DutiesOn(_ context.Context, date string) ([]models.PharmacyDuty, error) {
	d.date = date
	return []models.PharmacyDuty{{ID: 1}, {ID: 2}}, nil
}

func TestDashboardSummary(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	// 22:30 UTC is already the next day in Istanbul.
	clock := clockwork.NewFakeClockAt(time.Date(2026, 4, 14, 22, 30, 0, 0, time.UTC))
	duties := &dutiesStub{}
	svc := &DashboardService{
		Ads:           statusCounter{models.AdStatusPending: 4},
		Complaints:    statusCounter{models.ComplaintStatusNew: 7},
		Taxi:          &countStub{n: 12},
		Pharmacies:    duties,
		Announcements: &countStub{n: 3},
		Campaigns:     &countStub{n: 1},
		Clock:         clock,
		Location:      istanbul,
	}

	d, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.Dashboard{
		PendingAds:             4,
		NewComplaints:          7,
		ActiveTaxiDrivers:      12,
		PharmaciesOnDutyToday:  2,
		PublishedAnnouncements: 3,
		ActiveCampaigns:        1,
	}, d)
	assert.Equal(t, "2026-04-15", duties.date)
}

func TestDashboardSummaryStopsOnError(t *testing.T) {
	boom := errors.New("db down")
	svc := &DashboardService{
		Ads:        statusCounter{},
		Complaints: statusCounter{},
		Taxi:       &countStub{err: boom},
		Clock:      clockwork.NewFakeClock(),
	}

	_, err := svc.Summary(context.Background())

	assert.ErrorIs(t, err, boom)
}
