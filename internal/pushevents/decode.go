// Package pushevents turns raw Stash push webhooks into publishable comment
// records. Everything here is pure data transformation; all tracker I/O
// lives in the publisher.
package pushevents

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"githook/internal/models"
)

// ErrMalformedPayload marks payloads missing required structure. Handlers
// map it to a client error, never a silent success.
var ErrMalformedPayload = errors.New("malformed push event payload")

// Decoded is the normalized view of one push event.
type Decoded struct {
	RepoName     string
	RepoHomepage string
	RefName      string
	Commits      []models.Commit
}

// Decode validates the payload and derives repository identity, branch name
// and the ordered commit list.
func Decode(stashHost string, payload []byte) (Decoded, error) {
	var event models.PushEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return Decoded{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	name := strings.TrimSpace(event.Repository.Name)
	key := strings.TrimSpace(event.Repository.Project.Key)
	slug := strings.TrimSpace(event.Repository.Slug)

	switch {
	case name == "":
		return Decoded{}, fmt.Errorf("%w: missing repository.name", ErrMalformedPayload)
	case key == "":
		return Decoded{}, fmt.Errorf("%w: missing repository.project.key", ErrMalformedPayload)
	case slug == "":
		return Decoded{}, fmt.Errorf("%w: missing repository.slug", ErrMalformedPayload)
	case len(event.RefChanges) == 0:
		return Decoded{}, fmt.Errorf("%w: missing refChanges", ErrMalformedPayload)
	case event.Changesets == nil:
		return Decoded{}, fmt.Errorf("%w: missing changesets", ErrMalformedPayload)
	}

	// A push may move several refs at once; the final entry names the
	// branch the event is attributed to.
	ref := event.RefChanges[len(event.RefChanges)-1].RefID
	ref = strings.TrimPrefix(ref, "refs/heads/")

	homepage := strings.Join(
		[]string{stashHost, "projects", key, "repos", slug},
		"/",
	)

	return Decoded{
		RepoName:     name,
		RepoHomepage: homepage,
		RefName:      ref,
		Commits:      dedupCommits(event.Changesets.Values),
	}, nil
}

// dedupCommits collapses the changeset list to one commit per id through an
// insertion-ordered index: the first occurrence of an id wins and its
// position is kept. This is deliberate policy, matching upstream payloads
// that repeat a commit across changesets.
func dedupCommits(changesets []models.Changeset) []models.Commit {
	seen := make(map[string]struct{}, len(changesets))
	commits := make([]models.Commit, 0, len(changesets))

	for _, cs := range changesets {
		c := cs.ToCommit
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		commits = append(commits, models.Commit{
			ID:              c.ID,
			DisplayID:       c.DisplayID,
			AuthorName:      c.Author.Name,
			AuthorEmail:     c.Author.EmailAddress,
			AuthorTimestamp: c.AuthorTimestamp,
			Message:         c.Message,
		})
	}

	return commits
}
