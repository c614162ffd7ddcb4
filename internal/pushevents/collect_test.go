package pushevents

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func testCollector() *Collector {
	return &Collector{
		StashHost: testStashHost,
		Pattern:   regexp.MustCompile(`[A-Z]+-\d+`),
	}
}

func TestCollectOneRecordPerDistinctIssue(t *testing.T) {
	payload := encode(t, basePayload(
		changeset("aaa", "aaa", "Dev", "dev@example.com", 10, "Fixes ABC-123 and ABC-123 again"),
	))

	result, err := testCollector().Collect(payload)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	require.Equal(t, "ABC-123", result.Records[0].IssueID)
	require.Equal(t, "dev@example.com", result.Records[0].AuthorEmail)
	require.Contains(t, result.Records[0].Body, "https://stash.example.com/projects/PRJ/repos/hook/commits/aaa")
}

func TestCollectSortsByCommitTimestamp(t *testing.T) {
	// Later commit listed first; collect must still order records t1 < t2.
	payload := encode(t, basePayload(
		changeset("bbb", "bbb", "Dev", "dev@example.com", 200, "X-1 follow-up"),
		changeset("aaa", "aaa", "Dev", "dev@example.com", 100, "X-1 first step"),
	))

	result, err := testCollector().Collect(payload)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	require.Equal(t, "aaa", result.Records[0].CommitID)
	require.Equal(t, "bbb", result.Records[1].CommitID)

	for i := 1; i < len(result.Records); i++ {
		require.LessOrEqual(t,
			result.Records[i-1].AuthorTimestamp,
			result.Records[i].AuthorTimestamp,
		)
	}
}

func TestCollectTiesKeepEncounterOrder(t *testing.T) {
	payload := encode(t, basePayload(
		changeset("aaa", "aaa", "Dev", "dev@example.com", 100, "A-1"),
		changeset("bbb", "bbb", "Dev", "dev@example.com", 100, "B-2"),
	))

	result, err := testCollector().Collect(payload)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	require.Equal(t, "A-1", result.Records[0].IssueID)
	require.Equal(t, "B-2", result.Records[1].IssueID)
}

func TestCollectSkipsCommitsWithoutIssues(t *testing.T) {
	payload := encode(t, basePayload(
		changeset("aaa", "aaa", "Dev", "dev@example.com", 10, "chore: tidy imports"),
		changeset("bbb", "bbb", "Dev", "dev@example.com", 20, "fix DEF-7"),
	))

	result, err := testCollector().Collect(payload)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	require.Equal(t, "DEF-7", result.Records[0].IssueID)
	require.Equal(t, []string{"aaa"}, result.NoIssueCommits)
}

func TestCollectZeroCommits(t *testing.T) {
	result, err := testCollector().Collect(encode(t, basePayload()))
	require.NoError(t, err)

	require.Empty(t, result.Records)
}

func TestCollectIsPure(t *testing.T) {
	payload := encode(t, basePayload(
		changeset("aaa", "aaa", "Dev", "dev@example.com", 10, "ABC-1 and DEF-2\nacross lines GHI-3"),
	))

	collector := testCollector()

	first, err := collector.Collect(payload)
	require.NoError(t, err)

	second, err := collector.Collect(payload)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCollectMalformedPayloadPropagates(t *testing.T) {
	payload := basePayload()
	delete(payload, "refChanges")

	_, err := testCollector().Collect(encode(t, payload))

	require.ErrorIs(t, err, ErrMalformedPayload)
}
