package models

type Dashboard struct {
	PendingAds             int `json:"pending_ads"`
	NewComplaints          int `json:"new_complaints"`
	ActiveTaxiDrivers      int `json:"active_taxi_drivers"`
	PharmaciesOnDutyToday  int `json:"pharmacies_on_duty_today"`
	PublishedAnnouncements int `json:"published_announcements"`
	ActiveCampaigns        int `json:"active_campaigns"`
}
