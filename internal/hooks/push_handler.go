package hooks

import (
	"context"
	"errors"
	"log"

	"githook/internal/errmsg"
	"githook/internal/events"
	"githook/internal/publisher"
	"githook/internal/pushevents"
	"githook/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// Handler processes push deliveries: pure collection first, then the
// side-effecting publish. Concurrent deliveries share nothing mutable.
type Handler struct {
	Collector *pushevents.Collector
	Publisher *publisher.Publisher
	Em        *events.Emitter
}

func (h *Handler) pushEventHandler(c fiber.Ctx) error {
	result, err := h.Collector.Collect(c.Body())
	if err != nil {
		if errors.Is(err, pushevents.ErrMalformedPayload) {
			log.Printf("rejected push event: %v", err)
			return utils.StatusError(c, errmsg.HookInvalidPayload)
		}
		return utils.StatusError(c, errmsg.InternalServerError(err))
	}

	log.Printf(
		"push event on branch %s of %s: %d commits, %d comments to publish",
		result.RefName, result.RepoName, len(result.Commits), len(result.Records),
	)

	h.Em.PushReceived(result.RepoName, result.RefName, len(result.Commits), len(result.Records))
	for _, commitID := range result.NoIssueCommits {
		h.Em.CommitWithoutIssues(result.RepoName, commitID)
	}

	if err := h.Publisher.Publish(context.Background(), result.Records); err != nil {
		log.Printf("issue tracker unreachable: %v", err)
		return utils.StatusError(c, errmsg.TrackerUnavailable)
	}

	return c.SendString("Push event processed. Thanks!")
}
