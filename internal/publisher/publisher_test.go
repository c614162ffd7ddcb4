package publisher

import (
	"context"
	"errors"
	"testing"

	"githook/internal/models"
	"githook/internal/youtrack"

	"github.com/stretchr/testify/require"
)

type executedCommand struct {
	IssueID              string
	Command              string
	Comment              string
	RunAs                string
	DisableNotifications bool
}

// fakeTracker answers from fixture maps. Entries absent from issueErrs and
// commandErrs succeed; profiles absent from the map answer 404 like the
// real tracker.
type fakeTracker struct {
	searchResults map[string][]youtrack.UserSummary
	searchErr     error
	profiles      map[string]youtrack.UserProfile
	profileErrs   map[string]error
	issueErrs     map[string]error
	commandErrs   map[string]error

	commands []executedCommand
}

func (f *fakeTracker) SearchUsers(_ context.Context, query string) ([]youtrack.UserSummary, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[query], nil
}

func (f *fakeTracker) GetUser(_ context.Context, login string) (youtrack.UserProfile, error) {
	if err := f.profileErrs[login]; err != nil {
		return youtrack.UserProfile{}, err
	}

	profile, ok := f.profiles[login]
	if !ok {
		return youtrack.UserProfile{}, &youtrack.APIError{StatusCode: 404, Message: "user not found"}
	}

	return profile, nil
}

func (f *fakeTracker) GetIssue(_ context.Context, id string) (youtrack.Issue, error) {
	if err := f.issueErrs[id]; err != nil {
		return youtrack.Issue{}, err
	}
	return youtrack.Issue{ID: id}, nil
}

func (f *fakeTracker) ExecuteCommand(_ context.Context, issueID, command, comment, runAs string, disableNotifications bool) error {
	if err := f.commandErrs[issueID]; err != nil {
		return err
	}

	f.commands = append(f.commands, executedCommand{
		IssueID:              issueID,
		Command:              command,
		Comment:              comment,
		RunAs:                runAs,
		DisableNotifications: disableNotifications,
	})

	return nil
}

func record(issueID, email string, ts int64) models.CommentRecord {
	return models.CommentRecord{
		IssueID:         issueID,
		CommitID:        "aaa",
		AuthorEmail:     email,
		AuthorTimestamp: ts,
		Body:            "comment body",
	}
}

func newPublisher(tracker *fakeTracker) *Publisher {
	return &Publisher{
		Tracker:     tracker,
		DefaultUser: "gatekeeper",
	}
}

func TestPublishTrustsSingleSearchHit(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"dev@example.com": {{Login: "dev"}},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "dev@example.com", 1),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "dev", tracker.commands[0].RunAs)
	require.Equal(t, "comment", tracker.commands[0].Command)
	require.Equal(t, "comment body", tracker.commands[0].Comment)
	require.True(t, tracker.commands[0].DisableNotifications)
}

func TestPublishDisambiguatesByExactEmail(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"a@b.com": {{Login: "amber"}, {Login: "abel"}},
		},
		profiles: map[string]youtrack.UserProfile{
			"amber": {Login: "amber", Email: "amber@b.com"},
			"abel":  {Login: "abel", Email: "a@b.com"},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "a@b.com", 1),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "abel", tracker.commands[0].RunAs)
}

func TestPublishEmailMatchIsCaseSensitive(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"a@b.com": {{Login: "amber"}, {Login: "abel"}},
		},
		profiles: map[string]youtrack.UserProfile{
			"amber": {Login: "amber", Email: "A@B.COM"},
			"abel":  {Login: "abel", Email: "a@b.com "},
			// Neither matches exactly, so the default user is used.
			"gatekeeper": {Login: "gatekeeper", Email: "ops@example.com"},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "a@b.com", 1),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "gatekeeper", tracker.commands[0].RunAs)
}

func TestPublishSkipsFailingCandidateFetch(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"a@b.com": {{Login: "gone"}, {Login: "abel"}},
		},
		profileErrs: map[string]error{
			"gone": &youtrack.APIError{StatusCode: 404, Message: "user not found"},
		},
		profiles: map[string]youtrack.UserProfile{
			"abel": {Login: "abel", Email: "a@b.com"},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "a@b.com", 1),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "abel", tracker.commands[0].RunAs)
}

func TestPublishFallsBackToDefaultUser(t *testing.T) {
	tracker := &fakeTracker{
		profiles: map[string]youtrack.UserProfile{
			"gatekeeper": {Login: "gatekeeper", Email: "ops@example.com"},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "unknown@example.com", 1),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "gatekeeper", tracker.commands[0].RunAs)
}

func TestPublishDefaultUserMisconfiguredSkipsRecordOnly(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"dev@example.com": {{Login: "dev"}},
		},
		// No profiles at all: the default user lookup answers 404.
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "unknown@example.com", 1),
		record("ABC-2", "dev@example.com", 2),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "ABC-2", tracker.commands[0].IssueID)
	require.Equal(t, "dev", tracker.commands[0].RunAs)
}

func TestPublishSkipsMissingIssueAndContinues(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"dev@example.com": {{Login: "dev"}},
		},
		issueErrs: map[string]error{
			"ABC-999": &youtrack.APIError{StatusCode: 404, Message: "Issue not found."},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-999", "dev@example.com", 1),
		record("ABC-2", "dev@example.com", 2),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "ABC-2", tracker.commands[0].IssueID)
}

func TestPublishRejectedCommandDoesNotAbortBatch(t *testing.T) {
	tracker := &fakeTracker{
		searchResults: map[string][]youtrack.UserSummary{
			"dev@example.com": {{Login: "dev"}},
		},
		commandErrs: map[string]error{
			"ABC-1": &youtrack.APIError{StatusCode: 403, Message: "comment forbidden"},
		},
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "dev@example.com", 1),
		record("ABC-2", "dev@example.com", 2),
	})
	require.NoError(t, err)

	require.Len(t, tracker.commands, 1)
	require.Equal(t, "ABC-2", tracker.commands[0].IssueID)
}

func TestPublishTrackerDownAbortsBatch(t *testing.T) {
	tracker := &fakeTracker{
		searchErr: errors.New("dial tcp: connection refused"),
	}

	err := newPublisher(tracker).Publish(context.Background(), []models.CommentRecord{
		record("ABC-1", "dev@example.com", 1),
		record("ABC-2", "dev@example.com", 2),
	})

	require.Error(t, err)
	require.Empty(t, tracker.commands)
}

func TestPublishNoRecords(t *testing.T) {
	tracker := &fakeTracker{}

	require.NoError(t, newPublisher(tracker).Publish(context.Background(), nil))
	require.Empty(t, tracker.commands)
}
