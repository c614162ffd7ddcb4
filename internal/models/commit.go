package models

// Commit is the normalized view of one pushed commit. Built once per push
// event and never mutated.
type Commit struct {
	ID              string
	DisplayID       string
	AuthorName      string
	AuthorEmail     string
	AuthorTimestamp int64 // epoch milliseconds
	Message         string
}

// CommentRecord is one tracker comment derived from a push, ready to
// publish: exactly one per distinct (commit, issue) pair.
type CommentRecord struct {
	IssueID         string
	CommitID        string
	AuthorEmail     string
	AuthorTimestamp int64 // epoch milliseconds, used only for ordering
	Body            string
}
