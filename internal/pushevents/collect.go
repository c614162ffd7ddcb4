package pushevents

import (
	"regexp"
	"sort"

	"githook/internal/comment"
	"githook/internal/issuekeys"
	"githook/internal/models"
)

// Collector derives comment records from push payloads. It performs no
// network I/O, so collecting the same payload twice yields the same result.
type Collector struct {
	StashHost string
	Pattern   *regexp.Regexp
	Render    comment.Renderer
}

// Result is one collected push event: the decoded metadata, the records to
// publish, and the ids of commits that referenced no issue (kept for
// observability only).
type Result struct {
	Decoded
	Records        []models.CommentRecord
	NoIssueCommits []string
}

// Collect decodes the payload and builds one record per distinct
// (commit, issue) pair, sorted by commit timestamp ascending so comments
// land on multi-commit issues in chronological order. Ties keep encounter
// order. A push with zero commits yields zero records, not an error.
func (cl *Collector) Collect(payload []byte) (Result, error) {
	decoded, err := Decode(cl.StashHost, payload)
	if err != nil {
		return Result{}, err
	}

	render := cl.Render
	if render == nil {
		render = comment.Default
	}

	result := Result{Decoded: decoded}

	for _, c := range decoded.Commits {
		keys := issuekeys.Extract(cl.Pattern, c.Message)
		if len(keys) == 0 {
			result.NoIssueCommits = append(result.NoIssueCommits, c.ID)
			continue
		}

		body := render(comment.Params{
			DisplayID:       c.DisplayID,
			CommitURL:       decoded.RepoHomepage + "/commits/" + c.ID,
			AuthorName:      c.AuthorName,
			RefName:         decoded.RefName,
			RepoName:        decoded.RepoName,
			RepoHomepage:    decoded.RepoHomepage,
			AuthorTimestamp: c.AuthorTimestamp,
			Message:         c.Message,
		})

		for _, key := range keys {
			result.Records = append(result.Records, models.CommentRecord{
				IssueID:         key,
				CommitID:        c.ID,
				AuthorEmail:     c.AuthorEmail,
				AuthorTimestamp: c.AuthorTimestamp,
				Body:            body,
			})
		}
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].AuthorTimestamp < result.Records[j].AuthorTimestamp
	})

	return result, nil
}
