package models

// PushEvent models just the fields we rely on from a Stash push webhook.
type PushEvent struct {
	Repository Repository  `json:"repository"`
	RefChanges []RefChange `json:"refChanges"`
	Changesets *Changesets `json:"changesets"`
}

// Repository identifies the repository the push landed in.
type Repository struct {
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	Project Project `json:"project"`
}

type Project struct {
	Key string `json:"key"`
}

// RefChange is one ref update carried by the push; a single push may move
// several refs.
type RefChange struct {
	RefID string `json:"refId"`
}

// Changesets wraps the paged changeset list of the payload.
type Changesets struct {
	Values []Changeset `json:"values"`
}

// Changeset wraps one commit plus push-specific metadata.
type Changeset struct {
	ToCommit PushCommit `json:"toCommit"`
}

// PushCommit mirrors the commit fields of the webhook payload.
type PushCommit struct {
	ID              string       `json:"id"`
	DisplayID       string       `json:"displayId"`
	Author          CommitAuthor `json:"author"`
	AuthorTimestamp int64        `json:"authorTimestamp"`
	Message         string       `json:"message"`
}

type CommitAuthor struct {
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
}
