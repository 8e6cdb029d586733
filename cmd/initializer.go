package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/config"
	"belediyeBack/internal/handlers"
	"belediyeBack/internal/logger"
	"belediyeBack/internal/push"
	"belediyeBack/internal/repositories"
	"belediyeBack/internal/services"
	"belediyeBack/utils"
)

type application struct {
	log       logger.ILogger
	clock     clockwork.Clock
	location  *time.Location
	jwtSecret string
	hub       *Hub
	limiter   *ipRateLimiter

	userService *services.UserService
	adService   *services.AdService

	userHandler           *handlers.UserHandler
	neighborhoodHandler   *handlers.NeighborhoodHandler
	announcementHandler   *handlers.AnnouncementHandler
	adHandler             *handlers.AdHandler
	deathNoticeHandler    *handlers.DeathNoticeHandler
	pharmacyHandler       *handlers.PharmacyHandler
	taxiDriverHandler     *handlers.TaxiDriverHandler
	transportRouteHandler *handlers.TransportRouteHandler
	complaintHandler      *handlers.ComplaintHandler
	campaignHandler       *handlers.CampaignHandler
	placeHandler          *handlers.PlaceHandler
	fileHandler           *handlers.FileHandler
	notificationHandler   *handlers.NotificationHandler
	dashboardHandler      *handlers.DashboardHandler
}

// dependencies are the external clients built in main.
type dependencies struct {
	db      *sql.DB
	cache   cache.Cache
	storage services.ObjectStorage
	sender  push.Sender
	tokens  *utils.Manager
}

func initializeApp(cfg config.Config, deps dependencies, log logger.ILogger, clock clockwork.Clock) *application {
	loc := cfg.Location()

	userRepo := &repositories.UserRepository{DB: deps.db}
	neighborhoodRepo := &repositories.NeighborhoodRepository{DB: deps.db}
	announcementRepo := &repositories.AnnouncementRepository{DB: deps.db}
	adRepo := &repositories.AdRepository{DB: deps.db}
	deathNoticeRepo := &repositories.DeathNoticeRepository{DB: deps.db}
	pharmacyRepo := &repositories.PharmacyRepository{DB: deps.db}
	taxiRepo := &repositories.TaxiDriverRepository{DB: deps.db}
	routeRepo := &repositories.TransportRouteRepository{DB: deps.db}
	complaintRepo := &repositories.ComplaintRepository{DB: deps.db}
	campaignRepo := &repositories.CampaignRepository{DB: deps.db}
	placeRepo := &repositories.PlaceRepository{DB: deps.db}
	fileRepo := &repositories.FileRepository{DB: deps.db}
	notificationRepo := &repositories.NotificationRepository{DB: deps.db}

	hub := NewHub(log.With(logger.String("component", "websocket")))

	notificationService := &services.NotificationService{
		NotificationRepo: notificationRepo,
		Sender:           deps.sender,
		Log:              log.With(logger.String("component", "push")),
	}
	userService := &services.UserService{
		UserRepo:   userRepo,
		Tokens:     deps.tokens,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		Clock:      clock,
	}
	adService := &services.AdService{AdRepo: adRepo, Cache: deps.cache, Clock: clock, TTL: cfg.Ads.TTL}
	maxUpload := int64(cfg.Storage.MaxSizeMB) << 20

	return &application{
		log:       log,
		clock:     clock,
		location:  loc,
		jwtSecret: cfg.JWT.Secret,
		hub:       hub,
		limiter:   newIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, clock.Now),

		userService: userService,
		adService:   adService,

		userHandler: &handlers.UserHandler{Service: userService},
		neighborhoodHandler: &handlers.NeighborhoodHandler{Service: &services.NeighborhoodService{
			NeighborhoodRepo: neighborhoodRepo, Cache: deps.cache,
		}},
		announcementHandler: &handlers.AnnouncementHandler{Service: &services.AnnouncementService{
			AnnouncementRepo: announcementRepo, Notifier: notificationService, Cache: deps.cache, Clock: clock,
		}},
		adHandler: &handlers.AdHandler{Service: adService},
		deathNoticeHandler: &handlers.DeathNoticeHandler{Service: &services.DeathNoticeService{
			DeathNoticeRepo: deathNoticeRepo, Cache: deps.cache,
		}},
		pharmacyHandler: &handlers.PharmacyHandler{Service: &services.PharmacyService{
			PharmacyRepo: pharmacyRepo, Cache: deps.cache, Clock: clock, Location: loc,
		}},
		taxiDriverHandler: &handlers.TaxiDriverHandler{Service: &services.TaxiDriverService{
			TaxiRepo: taxiRepo, Shuffler: services.NewShuffler(uint64(clock.Now().UnixNano())),
		}},
		transportRouteHandler: &handlers.TransportRouteHandler{Service: &services.TransportRouteService{
			RouteRepo: routeRepo, Cache: deps.cache,
		}},
		complaintHandler: &handlers.ComplaintHandler{Service: &services.ComplaintService{
			ComplaintRepo: complaintRepo, Notifier: notificationService, Broadcaster: hub, Clock: clock,
		}},
		campaignHandler: &handlers.CampaignHandler{Service: &services.CampaignService{
			CampaignRepo: campaignRepo, Cache: deps.cache, Clock: clock,
		}},
		placeHandler: &handlers.PlaceHandler{Service: &services.PlaceService{
			PlaceRepo: placeRepo, Cache: deps.cache,
		}},
		fileHandler: &handlers.FileHandler{
			Service: &services.FileService{
				FileRepo: fileRepo,
				Storage:  deps.storage,
				MaxSize:  maxUpload,
				Log:      log.With(logger.String("component", "files")),
			},
			MaxSize: maxUpload,
		},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService},
		dashboardHandler: &handlers.DashboardHandler{Service: &services.DashboardService{
			Ads:           adRepo,
			Complaints:    complaintRepo,
			Taxi:          taxiRepo,
			Pharmacies:    pharmacyRepo,
			Announcements: announcementRepo,
			Campaigns:     campaignRepo,
			Clock:         clock,
			Location:      loc,
		}},
	}
}

// openDB connects to MySQL and applies pending migrations from dir.
func openDB(cfg config.Config, log logger.ILogger) (*sql.DB, error) {
	dsn, err := mysql.ParseDSN(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	dsn.ParseTime = true
	dsn.ClientFoundRows = true
	dsn.Loc = time.UTC

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	log.Info("connected to database")

	dsn.MultiStatements = true
	m, err := migrate.New("file://"+cfg.Database.Migrations, "mysql://"+dsn.FormatDSN())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("no migrations to apply")
	}
	return db, nil
}

// newCache returns a Redis-backed cache, or a no-op one when no address is configured.
func newCache(ctx context.Context, cfg config.Config, log logger.ILogger) (cache.Cache, func() error) {
	if cfg.Redis.Address == "" {
		log.Info("redis not configured, caching disabled")
		return cache.Noop{}, func() error { return nil }
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warning("redis ping failed, cache errors will be ignored", logger.Error(err))
	}
	return cache.NewRedisCache(client, cfg.Redis.CacheTTL, log.With(logger.String("component", "cache"))), client.Close
}

// newSender returns an FCM sender, or a logging one when no credentials file is configured.
func newSender(ctx context.Context, cfg config.Config, log logger.ILogger) (push.Sender, error) {
	pushLog := log.With(logger.String("component", "push"))
	if cfg.Firebase.CredentialsFile == "" {
		log.Info("firebase not configured, push messages are only logged")
		return push.LogSender{Log: pushLog}, nil
	}
	fb, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := fb.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return push.NewFCMSender(client, pushLog), nil
}
