package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"banquet-admin/auth"
	"banquet-admin/config"
	"banquet-admin/database"
	"banquet-admin/handlers"
	"banquet-admin/logger"
	"banquet-admin/menu"
	"banquet-admin/preview"
	"banquet-admin/router"
	"banquet-admin/session"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("cannot load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "banquet-admin"})

	var (
		bookings database.BookingStore
		users    database.UserStore
		fetchers []menu.Fetcher
	)
	for _, endpoint := range cfg.MenuEndpoints {
		fetchers = append(fetchers, menu.NewHTTPFetcher(endpoint, cfg.FetchTimeout))
	}

	if cfg.UseMongo() {
		db, err := database.DBInit(context.Background(), cfg.MongoConnString, cfg.MongoDatabase, cfg.MongoConnTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot initialize database")
		}
		defer db.Client().Disconnect(context.Background())

		bookings = database.NewMongoBookingStore(db)
		users = database.NewMongoUserStore(db)
		fetchers = append(fetchers, menu.NewCollectionFetcher(db.Collection(database.MenusCollection), cfg.FetchTimeout))
		log.Info().Str("database", cfg.MongoDatabase).Msg("using mongodb storage")
	} else {
		bookings = database.NewLocalBookingStore(cfg.LocalDBPath)
		userStore, err := database.LoadUserStore(cfg.UserDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load users")
		}
		users = userStore
		log.Info().Str("bookings", cfg.LocalDBPath).Str("users", cfg.UserDBPath).Msg("using local storage")
	}

	previews := preview.NewManager(menu.NewResolver(log, fetchers...), cfg.PreviewTimeout, cfg.PreviewIdleTTL, log)

	h := handlers.New(handlers.Deps{
		Config:   cfg,
		Log:      log,
		Verifier: auth.NewStoreVerifier(users),
		Sessions: session.NewStore(cfg.TokenTTL),
		Bookings: bookings,
		Previews: previews,
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	router.SetupRoutes(app, h)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go h.RunJanitor(janitorCtx, cfg.SweepInterval)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Int("menu_sources", len(fetchers)).Msg("server started")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
	stopJanitor()
	previews.Close()
}
