package api

import (
	"context"
	"time"

	"githook/internal/db"
	"githook/internal/errmsg"
	"githook/internal/models"
	"githook/internal/utils"
	"githook/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pollInterval = time.Second

// streamEventsHandler upgrades to a websocket and tails new audit events as
// they are recorded. Pass the operator token as the `token` query parameter
// on the handshake.
func streamEventsHandler(c fiber.Ctx) error {
	if db.Events == nil {
		return utils.StatusError(c, errmsg.EventStoreNotConfigured)
	}

	return ws.StreamWebSocket(c, tailEvents)
}

// tailEvents polls the event collection by timestamp watermark and writes
// every new event to the client in order.
func tailEvents(ctx context.Context, w *ws.EventWriter) error {
	since := time.Now().UTC()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
		cursor, err := db.Events.Find(ctx, bson.M{
			"timestamp": bson.M{"$gt": since},
		}, opts)
		if err != nil {
			return err
		}

		var batch []models.Event
		if err := cursor.All(ctx, &batch); err != nil {
			return err
		}

		for _, evt := range batch {
			if err := w.WriteEvent(evt); err != nil {
				return err
			}
			since = evt.TimeStamp
		}
	}
}
