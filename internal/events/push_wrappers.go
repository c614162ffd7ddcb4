package events

import "githook/internal/models"

const (
	ActorSystem   = "system"
	ActorOperator = "operator"
)

const (
	targetPush     = "push"
	targetCommit   = "commit"
	targetIssue    = "issue"
	targetUser     = "user"
	targetOperator = "operator"
)

// PushReceived records one accepted push delivery.
func (e *Emitter) PushReceived(repoName, refName string, commits, records int) {
	e.emit(models.Event{
		Action: "push.received",

		ActorRole: ActorSystem,
		ActorID:   repoName,

		TargetType: targetPush,
		TargetID:   refName,

		Props: map[string]any{
			"repository": repoName,
			"ref":        refName,
			"commits":    commits,
			"comments":   records,
		},
	})
}

// CommitWithoutIssues records a commit whose message referenced no issue.
func (e *Emitter) CommitWithoutIssues(repoName, commitID string) {
	e.emit(models.Event{
		Action: "commit.no_issues",

		ActorRole: ActorSystem,
		ActorID:   repoName,

		TargetType: targetCommit,
		TargetID:   commitID,

		Props: nil,
	})
}

// CommentPublished records one comment successfully executed on an issue.
func (e *Emitter) CommentPublished(issueID, commitID, runAs string) {
	e.emit(models.Event{
		Action: "comment.published",

		ActorRole: ActorSystem,
		ActorID:   runAs,

		TargetType: targetIssue,
		TargetID:   issueID,

		Props: map[string]any{
			"commit": commitID,
			"runAs":  runAs,
		},
	})
}

// IssueSkipped records a referenced issue the tracker rejected, usually
// because the id does not exist.
func (e *Emitter) IssueSkipped(issueID, commitID, reason string) {
	e.emit(models.Event{
		Action: "issue.skipped",

		ActorRole: ActorSystem,
		ActorID:   commitID,

		TargetType: targetIssue,
		TargetID:   issueID,

		Props: map[string]any{
			"commit": commitID,
			"reason": reason,
		},
	})
}

// UserFallback records an author email that resolved to no tracker login.
func (e *Emitter) UserFallback(email, defaultUser string) {
	e.emit(models.Event{
		Action: "user.fallback",

		ActorRole: ActorSystem,
		ActorID:   email,

		TargetType: targetUser,
		TargetID:   defaultUser,

		Props: map[string]any{
			"email": email,
		},
	})
}

// DefaultUserMisconfigured records that the fallback user itself could not
// be fetched. Distinct from user.fallback so configuration problems stand
// out in the audit trail.
func (e *Emitter) DefaultUserMisconfigured(defaultUser, reason string) {
	e.emit(models.Event{
		Action: "user.default.misconfigured",

		ActorRole: ActorSystem,
		ActorID:   defaultUser,

		TargetType: targetUser,
		TargetID:   defaultUser,

		Props: map[string]any{
			"reason": reason,
		},
	})
}

// OperatorLogin records an operator signing in to the audit endpoints.
func (e *Emitter) OperatorLogin(username string) {
	e.emit(models.Event{
		Action: "operator.login",

		ActorRole: ActorOperator,
		ActorID:   username,

		TargetType: targetOperator,
		TargetID:   username,

		Props: nil,
	})
}
