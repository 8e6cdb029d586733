package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// router registers every handler under its pat pattern and tags requests with it.
type router struct {
	*pat.PatternServeMux
}

func (m router) Get(pattern string, h http.Handler)   { m.PatternServeMux.Get(pattern, withRoute(pattern, h)) }
func (m router) Post(pattern string, h http.Handler)  { m.PatternServeMux.Post(pattern, withRoute(pattern, h)) }
func (m router) Patch(pattern string, h http.Handler) { m.PatternServeMux.Patch(pattern, withRoute(pattern, h)) }
func (m router) Del(pattern string, h http.Handler)   { m.PatternServeMux.Del(pattern, withRoute(pattern, h)) }

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	limitedMiddleware := standardMiddleware.Append(app.limiter.Handler)
	optionalAuthMiddleware := standardMiddleware.Append(app.optionalAuth)
	citizenMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(roleCitizen))
	staffMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(roleStaff))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(roleAdmin))

	mux := router{pat.New()}

	mux.Get("/metrics", promhttp.Handler())
	mux.Get("/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Auth
	mux.Post("/auth/sign_up", limitedMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", limitedMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/auth/sign_out", standardMiddleware.ThenFunc(app.userHandler.SignOut))
	mux.Get("/auth/me", citizenMiddleware.ThenFunc(app.userHandler.Me))

	// Users
	mux.Get("/admin/users", adminMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Post("/admin/users", adminMiddleware.ThenFunc(app.userHandler.CreateUser))
	mux.Get("/admin/users/:id", adminMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Patch("/admin/users/:id", adminMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Del("/admin/users/:id", adminMiddleware.ThenFunc(app.userHandler.DeleteUser))

	// Neighborhoods
	mux.Get("/neighborhoods", standardMiddleware.ThenFunc(app.neighborhoodHandler.GetNeighborhoods))
	mux.Get("/admin/neighborhoods", staffMiddleware.ThenFunc(app.neighborhoodHandler.GetNeighborhoods))
	mux.Post("/admin/neighborhoods", staffMiddleware.ThenFunc(app.neighborhoodHandler.CreateNeighborhood))
	mux.Get("/admin/neighborhoods/:id", staffMiddleware.ThenFunc(app.neighborhoodHandler.GetNeighborhoodByID))
	mux.Patch("/admin/neighborhoods/:id", staffMiddleware.ThenFunc(app.neighborhoodHandler.UpdateNeighborhood))
	mux.Del("/admin/neighborhoods/:id", staffMiddleware.ThenFunc(app.neighborhoodHandler.DeleteNeighborhood))

	// Announcements
	mux.Get("/announcements", standardMiddleware.ThenFunc(app.announcementHandler.ListPublished))
	mux.Get("/announcements/:id", standardMiddleware.ThenFunc(app.announcementHandler.ViewAnnouncement))
	mux.Get("/admin/announcements", staffMiddleware.ThenFunc(app.announcementHandler.GetAnnouncements))
	mux.Post("/admin/announcements", staffMiddleware.ThenFunc(app.announcementHandler.CreateAnnouncement))
	mux.Get("/admin/announcements/:id", staffMiddleware.ThenFunc(app.announcementHandler.GetAnnouncementByID))
	mux.Patch("/admin/announcements/:id", staffMiddleware.ThenFunc(app.announcementHandler.UpdateAnnouncement))
	mux.Del("/admin/announcements/:id", staffMiddleware.ThenFunc(app.announcementHandler.DeleteAnnouncement))

	// Ads
	mux.Get("/ads", standardMiddleware.ThenFunc(app.adHandler.ListPublic))
	mux.Post("/ads", citizenMiddleware.ThenFunc(app.adHandler.SubmitAd))
	mux.Get("/ads/:id", standardMiddleware.ThenFunc(app.adHandler.GetPublic))
	mux.Del("/ads/:id", citizenMiddleware.ThenFunc(app.adHandler.DeleteOwn))
	mux.Get("/me/ads", citizenMiddleware.ThenFunc(app.adHandler.ListOwn))
	mux.Get("/admin/ads", staffMiddleware.ThenFunc(app.adHandler.GetAds))
	mux.Post("/admin/ads", staffMiddleware.ThenFunc(app.adHandler.CreateAd))
	mux.Get("/admin/ads/:id", staffMiddleware.ThenFunc(app.adHandler.GetAdByID))
	mux.Patch("/admin/ads/:id/status", staffMiddleware.ThenFunc(app.adHandler.ModerateAd))
	mux.Patch("/admin/ads/:id", staffMiddleware.ThenFunc(app.adHandler.UpdateAd))
	mux.Del("/admin/ads/:id", staffMiddleware.ThenFunc(app.adHandler.DeleteAd))

	// Death notices
	mux.Get("/death_notices", standardMiddleware.ThenFunc(app.deathNoticeHandler.GetDeathNotices))
	mux.Get("/death_notices/:id", standardMiddleware.ThenFunc(app.deathNoticeHandler.GetDeathNoticeByID))
	mux.Get("/admin/death_notices", staffMiddleware.ThenFunc(app.deathNoticeHandler.GetDeathNotices))
	mux.Post("/admin/death_notices", staffMiddleware.ThenFunc(app.deathNoticeHandler.CreateDeathNotice))
	mux.Get("/admin/death_notices/:id", staffMiddleware.ThenFunc(app.deathNoticeHandler.GetDeathNoticeByID))
	mux.Patch("/admin/death_notices/:id", staffMiddleware.ThenFunc(app.deathNoticeHandler.UpdateDeathNotice))
	mux.Del("/admin/death_notices/:id", staffMiddleware.ThenFunc(app.deathNoticeHandler.DeleteDeathNotice))

	// Pharmacies
	mux.Get("/pharmacies", standardMiddleware.ThenFunc(app.pharmacyHandler.GetPharmacies))
	mux.Get("/pharmacies/on_duty", standardMiddleware.ThenFunc(app.pharmacyHandler.OnDuty))
	mux.Get("/pharmacies/:id", standardMiddleware.ThenFunc(app.pharmacyHandler.GetPharmacyByID))
	mux.Get("/admin/pharmacies", staffMiddleware.ThenFunc(app.pharmacyHandler.GetPharmacies))
	mux.Post("/admin/pharmacies", staffMiddleware.ThenFunc(app.pharmacyHandler.CreatePharmacy))
	mux.Get("/admin/pharmacies/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.GetPharmacyByID))
	mux.Patch("/admin/pharmacies/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.UpdatePharmacy))
	mux.Del("/admin/pharmacies/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.DeletePharmacy))
	mux.Get("/admin/pharmacy_duties", staffMiddleware.ThenFunc(app.pharmacyHandler.GetDuties))
	mux.Post("/admin/pharmacy_duties/bulk", staffMiddleware.ThenFunc(app.pharmacyHandler.CreateDuties))
	mux.Post("/admin/pharmacy_duties", staffMiddleware.ThenFunc(app.pharmacyHandler.CreateDuty))
	mux.Get("/admin/pharmacy_duties/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.GetDutyByID))
	mux.Patch("/admin/pharmacy_duties/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.UpdateDuty))
	mux.Del("/admin/pharmacy_duties/:id", staffMiddleware.ThenFunc(app.pharmacyHandler.DeleteDuty))

	// Taxi
	mux.Get("/taxi", standardMiddleware.ThenFunc(app.taxiDriverHandler.ListPublic))
	mux.Post("/taxi/:id/call", standardMiddleware.ThenFunc(app.taxiDriverHandler.Call))
	mux.Get("/admin/taxi", staffMiddleware.ThenFunc(app.taxiDriverHandler.GetDrivers))
	mux.Post("/admin/taxi", staffMiddleware.ThenFunc(app.taxiDriverHandler.CreateDriver))
	mux.Get("/admin/taxi/:id", staffMiddleware.ThenFunc(app.taxiDriverHandler.GetDriverByID))
	mux.Patch("/admin/taxi/:id", staffMiddleware.ThenFunc(app.taxiDriverHandler.UpdateDriver))
	mux.Del("/admin/taxi/:id", staffMiddleware.ThenFunc(app.taxiDriverHandler.DeleteDriver))

	// Transport routes
	mux.Get("/transport_routes", standardMiddleware.ThenFunc(app.transportRouteHandler.ListPublic))
	mux.Get("/transport_routes/:id", standardMiddleware.ThenFunc(app.transportRouteHandler.GetPublic))
	mux.Get("/admin/transport_routes", staffMiddleware.ThenFunc(app.transportRouteHandler.GetRoutes))
	mux.Post("/admin/transport_routes", staffMiddleware.ThenFunc(app.transportRouteHandler.CreateRoute))
	mux.Get("/admin/transport_routes/:id", staffMiddleware.ThenFunc(app.transportRouteHandler.GetRouteByID))
	mux.Patch("/admin/transport_routes/:id", staffMiddleware.ThenFunc(app.transportRouteHandler.UpdateRoute))
	mux.Del("/admin/transport_routes/:id", staffMiddleware.ThenFunc(app.transportRouteHandler.DeleteRoute))

	// Complaints
	mux.Post("/complaints", citizenMiddleware.Append(app.limiter.Handler).ThenFunc(app.complaintHandler.CreateComplaint))
	mux.Get("/complaints/track/:code", standardMiddleware.ThenFunc(app.complaintHandler.Track))
	mux.Get("/complaints/:id", citizenMiddleware.ThenFunc(app.complaintHandler.GetComplaint))
	mux.Del("/complaints/:id", citizenMiddleware.ThenFunc(app.complaintHandler.WithdrawComplaint))
	mux.Get("/me/complaints", citizenMiddleware.ThenFunc(app.complaintHandler.ListOwn))
	mux.Get("/admin/complaints", staffMiddleware.ThenFunc(app.complaintHandler.GetComplaints))
	mux.Get("/admin/complaints/:id", staffMiddleware.ThenFunc(app.complaintHandler.GetComplaint))
	mux.Patch("/admin/complaints/:id", staffMiddleware.ThenFunc(app.complaintHandler.ReviewComplaint))
	mux.Get("/admin/ws", staffMiddleware.ThenFunc(app.WebSocketHandler))

	// Campaigns
	mux.Get("/campaigns", standardMiddleware.ThenFunc(app.campaignHandler.ListRunning))
	mux.Get("/campaigns/:id", standardMiddleware.ThenFunc(app.campaignHandler.GetRunning))
	mux.Get("/admin/campaigns", staffMiddleware.ThenFunc(app.campaignHandler.GetCampaigns))
	mux.Post("/admin/campaigns", staffMiddleware.ThenFunc(app.campaignHandler.CreateCampaign))
	mux.Get("/admin/campaigns/:id", staffMiddleware.ThenFunc(app.campaignHandler.GetCampaignByID))
	mux.Patch("/admin/campaigns/:id", staffMiddleware.ThenFunc(app.campaignHandler.UpdateCampaign))
	mux.Del("/admin/campaigns/:id", staffMiddleware.ThenFunc(app.campaignHandler.DeleteCampaign))

	// Guide
	mux.Get("/place_categories", standardMiddleware.ThenFunc(app.placeHandler.GetCategories))
	mux.Get("/places", standardMiddleware.ThenFunc(app.placeHandler.GetPlaces))
	mux.Get("/places/:id", standardMiddleware.ThenFunc(app.placeHandler.GetPlaceByID))
	mux.Get("/admin/place_categories", staffMiddleware.ThenFunc(app.placeHandler.GetCategories))
	mux.Post("/admin/place_categories", staffMiddleware.ThenFunc(app.placeHandler.CreateCategory))
	mux.Get("/admin/place_categories/:id", staffMiddleware.ThenFunc(app.placeHandler.GetCategoryByID))
	mux.Patch("/admin/place_categories/:id", staffMiddleware.ThenFunc(app.placeHandler.UpdateCategory))
	mux.Del("/admin/place_categories/:id", staffMiddleware.ThenFunc(app.placeHandler.DeleteCategory))
	mux.Get("/admin/places", staffMiddleware.ThenFunc(app.placeHandler.GetPlaces))
	mux.Post("/admin/places", staffMiddleware.ThenFunc(app.placeHandler.CreatePlace))
	mux.Get("/admin/places/:id", staffMiddleware.ThenFunc(app.placeHandler.GetPlaceByID))
	mux.Patch("/admin/places/:id", staffMiddleware.ThenFunc(app.placeHandler.UpdatePlace))
	mux.Del("/admin/places/:id", staffMiddleware.ThenFunc(app.placeHandler.DeletePlace))

	// Files
	mux.Post("/admin/upload", staffMiddleware.ThenFunc(app.fileHandler.Upload))
	mux.Get("/admin/files", staffMiddleware.ThenFunc(app.fileHandler.GetFiles))
	mux.Del("/admin/files/:id", staffMiddleware.ThenFunc(app.fileHandler.DeleteFile))

	// Notifications
	mux.Post("/devices", optionalAuthMiddleware.ThenFunc(app.notificationHandler.RegisterDevice))
	mux.Del("/devices/:token", standardMiddleware.ThenFunc(app.notificationHandler.UnregisterDevice))
	mux.Get("/admin/notifications", staffMiddleware.ThenFunc(app.notificationHandler.GetNotifications))
	mux.Post("/admin/notifications", staffMiddleware.ThenFunc(app.notificationHandler.SendNotification))

	// Dashboard
	mux.Get("/admin/dashboard", staffMiddleware.ThenFunc(app.dashboardHandler.Summary))

	return mux
}
