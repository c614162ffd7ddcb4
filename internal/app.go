package internal

import (
	"log"

	"githook/internal/comment"
	"githook/internal/db"
	"githook/internal/env"
	"githook/internal/events"
	eventsapi "githook/internal/events/api"
	"githook/internal/hooks"
	"githook/internal/operators"
	"githook/internal/publisher"
	"githook/internal/pushevents"
	"githook/internal/youtrack"

	"github.com/gofiber/fiber/v3"
)

// SetupApp loads configuration, connects the optional event store and wires
// every route. The returned config drives listen options in main.
func SetupApp(envRoot string, appVersion string) (*fiber.App, *env.Config) {
	cfg, err := env.Load(envRoot, appVersion)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.MongoURI != "" {
		if err := db.InitDB(cfg.MongoURI); err != nil {
			log.Fatal("Could not connect to MongoDB")
		}
		events.Em = events.NewEmitter(db.Events)
	} else {
		events.Em = nil
	}

	tracker := youtrack.New(
		cfg.YouTrackURL,
		cfg.YouTrackUsername,
		cfg.YouTrackPassword,
		cfg.YouTrackToken,
	)

	handler := &hooks.Handler{
		Collector: &pushevents.Collector{
			StashHost: cfg.StashHost,
			Pattern:   cfg.IssuePattern,
			Render:    comment.Default,
		},
		Publisher: &publisher.Publisher{
			Tracker:     tracker,
			DefaultUser: cfg.DefaultUser,
			Em:          events.Em,
		},
		Em: events.Em,
	}

	app := fiber.New()

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ping")
	})

	app.Get("/version", func(c fiber.Ctx) error {
		return c.SendString("v" + cfg.Version)
	})

	hooks.Routes(app, handler)
	operators.Routes(app, cfg.JWTSecret)
	eventsapi.Routes(app, cfg.JWTSecret)

	return app, cfg
}
