// Package api exposes the operator-facing audit event endpoints.
package api

import (
	"strconv"

	"githook/internal/db"
	"githook/internal/errmsg"
	"githook/internal/models"
	"githook/internal/utils"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Routes wires the audit endpoints under /events, operator-authenticated.
func Routes(app fiber.Router, jwtSecret []byte) {
	group := app.Group("/events", models.OperatorMiddleware(jwtSecret))

	group.Get("/", listEventsHandler)
	group.Get("/stream", streamEventsHandler)
}

// listEventsHandler returns the most recent audit events, newest first.
func listEventsHandler(c fiber.Ctx) error {
	if db.Events == nil {
		return utils.StatusError(c, errmsg.EventStoreNotConfigured)
	}

	limit, err := strconv.ParseInt(c.Query("limit", strconv.Itoa(defaultLimit)), 10, 64)
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := db.Events.Find(db.Ctx, bson.M{}, opts)
	if err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	recent := []models.Event{}
	if err := cursor.All(db.Ctx, &recent); err != nil {
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	return c.JSON(recent)
}
