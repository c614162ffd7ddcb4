// Package publisher posts collected comment records to the issue tracker.
// All outbound I/O of the webhook pipeline happens here.
package publisher

import (
	"context"
	"errors"
	"log"

	"githook/internal/events"
	"githook/internal/models"
	"githook/internal/youtrack"
)

const commentCommand = "comment"

// Tracker is the subset of the tracker API the publisher needs. A failure
// reported by the tracker itself must come back as *youtrack.APIError;
// anything else is treated as a connectivity problem.
type Tracker interface {
	SearchUsers(ctx context.Context, query string) ([]youtrack.UserSummary, error)
	GetUser(ctx context.Context, login string) (youtrack.UserProfile, error)
	GetIssue(ctx context.Context, id string) (youtrack.Issue, error)
	ExecuteCommand(ctx context.Context, issueID, command, comment, runAs string, disableNotifications bool) error
}

type Publisher struct {
	Tracker     Tracker
	DefaultUser string
	Em          *events.Emitter
}

// Publish posts one comment per record, strictly in the order given (the
// collector already time-sorted them). A record the tracker rejects is
// skipped and its siblings still run; only connectivity failures abort the
// batch, since nothing can succeed without the tracker.
func (p *Publisher) Publish(ctx context.Context, records []models.CommentRecord) error {
	for _, rec := range records {
		login, err := p.runAsLogin(ctx, rec)
		if err != nil {
			return err
		}
		if login == "" {
			continue
		}

		if _, err := p.Tracker.GetIssue(ctx, rec.IssueID); err != nil {
			var apiErr *youtrack.APIError
			if !errors.As(err, &apiErr) {
				return err
			}

			log.Printf("issue %s not found, skipping comment for commit %s: %v", rec.IssueID, rec.CommitID, apiErr)
			p.Em.IssueSkipped(rec.IssueID, rec.CommitID, apiErr.Error())
			continue
		}

		err = p.Tracker.ExecuteCommand(ctx, rec.IssueID, commentCommand, rec.Body, login, true)
		if err != nil {
			var apiErr *youtrack.APIError
			if !errors.As(err, &apiErr) {
				return err
			}

			log.Printf("comment command on %s rejected for commit %s: %v", rec.IssueID, rec.CommitID, apiErr)
			p.Em.IssueSkipped(rec.IssueID, rec.CommitID, apiErr.Error())
			continue
		}

		p.Em.CommentPublished(rec.IssueID, rec.CommitID, login)
	}

	return nil
}

// runAsLogin resolves the record's author to a tracker login, falling back
// to the configured default user. An empty login with a nil error means the
// fallback itself is misconfigured and the record must be skipped.
func (p *Publisher) runAsLogin(ctx context.Context, rec models.CommentRecord) (string, error) {
	login, found, err := p.resolveLogin(ctx, rec.AuthorEmail)
	if err != nil {
		return "", err
	}
	if found {
		return login, nil
	}

	log.Printf("no tracker user for %s, falling back to %s", rec.AuthorEmail, p.DefaultUser)
	p.Em.UserFallback(rec.AuthorEmail, p.DefaultUser)

	profile, err := p.Tracker.GetUser(ctx, p.DefaultUser)
	if err != nil {
		var apiErr *youtrack.APIError
		if !errors.As(err, &apiErr) {
			return "", err
		}

		log.Printf("default user %s cannot be fetched, check DEFAULT_USER: %v", p.DefaultUser, apiErr)
		p.Em.DefaultUserMisconfigured(p.DefaultUser, apiErr.Error())
		return "", nil
	}

	return profile.Login, nil
}

// resolveLogin maps an author email to a tracker login. A single search hit
// is trusted as-is; with zero or several hits each candidate's full profile
// is checked for an exact email match, since the tracker's search is fuzzy.
// A candidate whose profile fetch fails is skipped, never fatal.
func (p *Publisher) resolveLogin(ctx context.Context, email string) (login string, found bool, err error) {
	users, err := p.Tracker.SearchUsers(ctx, email)
	if err != nil {
		var apiErr *youtrack.APIError
		if !errors.As(err, &apiErr) {
			return "", false, err
		}
		return "", false, nil
	}

	if len(users) == 1 {
		return users[0].Login, true, nil
	}

	for _, u := range users {
		profile, err := p.Tracker.GetUser(ctx, u.Login)
		if err != nil {
			continue
		}

		if profile.Email == email {
			return profile.Login, true, nil
		}
	}

	return "", false, nil
}
