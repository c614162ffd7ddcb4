// Package comment renders the tracker comment body for one commit.
package comment

import (
	"fmt"
	"time"
)

// Params carries everything the comment template needs for one commit.
type Params struct {
	DisplayID       string
	CommitURL       string
	AuthorName      string
	RefName         string
	RepoName        string
	RepoHomepage    string
	AuthorTimestamp int64 // epoch milliseconds
	Message         string
}

// Renderer produces a comment body from the commit parameters. The default
// targets YouTrack's wiki markup; point this at another renderer when the
// target tracker speaks a different dialect.
type Renderer func(Params) string

// Default renders YouTrack wiki markup: {monospace} blocks and [url label]
// links, fields in the order id, author, branch, repository, timestamp,
// then the verbatim commit message.
func Default(p Params) string {
	ts := time.UnixMilli(p.AuthorTimestamp).UTC().Format("2006-01-02 15:04:05")

	return fmt.Sprintf(
		"=Git Commit=\n\n"+
			"{monospace}\n"+
			"*id*: [%s %s]\n"+
			"*author*: %s\n"+
			"*branch*: %s\n"+
			"*repository*: [%s %s]\n"+
			"*timestamp*: %s UTC\n"+
			"{monospace}\n\n"+
			"====Message====\n\n"+
			"{monospace}\n"+
			"%s\n"+
			"{monospace}",
		p.CommitURL, p.DisplayID,
		p.AuthorName,
		p.RefName,
		p.RepoHomepage, p.RepoName,
		ts,
		p.Message,
	)
}
