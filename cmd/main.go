package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"belediyeBack/internal/config"
	"belediyeBack/internal/handlers"
	"belediyeBack/internal/logger"
	"belediyeBack/utils"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.New("belediye", "info").Error("load config", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New("belediye", cfg.Server.LogLevel)
	defer log.Sync()
	handlers.SetLogger(log.With(logger.String("component", "http")))

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.ILogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	appCache, closeCache := newCache(ctx, cfg, log)
	defer closeCache()

	sender, err := newSender(ctx, cfg, log)
	if err != nil {
		return err
	}

	storage, err := utils.NewS3Storage(utils.StorageConfig{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		return err
	}

	tokens, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return err
	}

	app := initializeApp(cfg, dependencies{
		db:      db,
		cache:   appCache,
		storage: storage,
		sender:  sender,
		tokens:  tokens,
	}, log, clockwork.NewRealClock())

	created, err := app.userService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Phone, cfg.Admin.Password)
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap administrator created", logger.String("phone", cfg.Admin.Phone))
	}

	go app.hub.Run()
	defer app.hub.Close()

	scheduler, err := app.startCleaners(ctx)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.String("addr", cfg.Server.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
