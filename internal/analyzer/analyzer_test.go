package analyzer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gnomegl/gitgaze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	user        *models.UserProfile
	repos       []models.Repository
	commits     map[string][]models.Commit
	commitCalls []string
}

func (s *stubFetcher) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	if s.user == nil {
		return &models.UserProfile{Login: username}, nil
	}
	return s.user, nil
}

func (s *stubFetcher) FetchRepos(ctx context.Context, username string) ([]models.Repository, error) {
	return s.repos, nil
}

func (s *stubFetcher) FetchCommits(ctx context.Context, owner, repo string) ([]models.Commit, error) {
	s.commitCalls = append(s.commitCalls, repo)
	return s.commits[repo], nil
}

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func commitAt(t *testing.T, value string) models.Commit {
	t.Helper()
	return models.Commit{AuthoredAt: ts(t, value)}
}

func quietConfig(limit int) *Config {
	return &Config{CommitRepoLimit: limit, ProgressWriter: io.Discard}
}

func TestComputeRepoStatsTotals(t *testing.T) {
	repos := []models.Repository{
		{Name: "a", Stars: 5, Forks: 1, Watchers: 2, SizeKB: 100, Language: "Go", License: "MIT License"},
		{Name: "b", Stars: 15, Forks: 3, Watchers: 4, SizeKB: 300, Language: "Go"},
	}

	stats := computeRepoStats(repos)

	assert.Equal(t, 2, stats.TotalRepos)
	assert.Equal(t, 20, stats.TotalStars)
	assert.Equal(t, 4, stats.TotalForks)
	assert.Equal(t, 6, stats.TotalWatchers)
	assert.InDelta(t, 10.0, stats.AvgStarsPerRepo, 0.001)
	assert.InDelta(t, 200.0, stats.AvgRepoSize, 0.001)
	assert.InDelta(t, 200.0, stats.MedianRepoSize, 0.001)
	assert.Equal(t, []models.LanguageCount{{Name: "Go", Count: 2}}, stats.TopLanguages)
	assert.Equal(t, []models.LicenseCount{{Name: "MIT License", Count: 1}}, stats.Licenses)
}

func TestComputeRepoStatsEmpty(t *testing.T) {
	stats := computeRepoStats(nil)

	assert.Equal(t, 0, stats.TotalRepos)
	assert.Zero(t, stats.AvgStarsPerRepo)
	assert.Zero(t, stats.AvgRepoSize)
	assert.Zero(t, stats.MedianRepoSize)
	assert.Empty(t, stats.TopLanguages)
	assert.Empty(t, stats.Licenses)
}

func TestComputeRepoStatsSkipsAbsentOptionals(t *testing.T) {
	repos := []models.Repository{
		{Name: "a", Language: "", License: ""},
		{Name: "b", Language: "Rust", License: ""},
	}

	stats := computeRepoStats(repos)

	assert.Equal(t, []models.LanguageCount{{Name: "Rust", Count: 1}}, stats.TopLanguages)
	assert.Empty(t, stats.Licenses)
}

func TestMedianInts(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected float64
	}{
		{name: "empty", values: nil, expected: 0},
		{name: "single", values: []int{7}, expected: 7},
		{name: "odd", values: []int{9, 1, 5}, expected: 5},
		{name: "even", values: []int{4, 1, 3, 2}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, medianInts(tt.values), 0.001)
		})
	}
}

func TestQuarterLabel(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{value: "2023-01-15T00:00:00Z", expected: "2023-Q1"},
		{value: "2023-03-31T23:59:59Z", expected: "2023-Q1"},
		{value: "2023-04-01T00:00:00Z", expected: "2023-Q2"},
		{value: "2023-05-10T00:00:00Z", expected: "2023-Q2"},
		{value: "2023-09-30T12:00:00Z", expected: "2023-Q3"},
		{value: "2023-12-01T00:00:00Z", expected: "2023-Q4"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, quarterLabel(ts(t, tt.value)))
		})
	}
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, mondayIndex(time.Monday))
	assert.Equal(t, 4, mondayIndex(time.Friday))
	assert.Equal(t, 5, mondayIndex(time.Saturday))
	assert.Equal(t, 6, mondayIndex(time.Sunday))
}

func TestFavoriteHoursFirstSeenTies(t *testing.T) {
	patterns := &models.ActivityPatterns{}
	commits := []models.Commit{
		commitAt(t, "2023-05-01T09:10:00Z"),
		commitAt(t, "2023-05-01T09:20:00Z"),
		commitAt(t, "2023-05-02T14:00:00Z"),
		commitAt(t, "2023-05-03T09:30:00Z"),
		commitAt(t, "2023-05-03T22:00:00Z"),
	}

	applyCommitPatterns(patterns, commits)

	expected := []models.HourCount{
		{Hour: 9, Count: 3},
		{Hour: 14, Count: 1},
		{Hour: 22, Count: 1},
	}
	assert.Equal(t, expected, patterns.FavoriteCommitHours)
	assert.Equal(t, 5, patterns.TotalCommits)
}

func TestTimeOfDayBucketsSumToCommitCount(t *testing.T) {
	patterns := &models.ActivityPatterns{}
	commits := []models.Commit{
		commitAt(t, "2023-05-01T00:00:00Z"), // night
		commitAt(t, "2023-05-01T04:59:00Z"), // night
		commitAt(t, "2023-05-01T05:00:00Z"), // morning
		commitAt(t, "2023-05-01T11:59:00Z"), // morning
		commitAt(t, "2023-05-01T12:00:00Z"), // afternoon
		commitAt(t, "2023-05-01T16:59:00Z"), // afternoon
		commitAt(t, "2023-05-01T17:00:00Z"), // evening
		commitAt(t, "2023-05-01T21:59:00Z"), // evening
		commitAt(t, "2023-05-01T22:00:00Z"), // night
		commitAt(t, "2023-05-01T23:59:00Z"), // night
	}

	applyCommitPatterns(patterns, commits)

	freq := patterns.CommitFrequency
	assert.Equal(t, 2, freq.Morning)
	assert.Equal(t, 2, freq.Afternoon)
	assert.Equal(t, 2, freq.Evening)
	assert.Equal(t, 4, freq.Night)
	assert.Equal(t, len(commits), freq.Total())
}

func TestFavoriteDaysMondayConvention(t *testing.T) {
	patterns := &models.ActivityPatterns{}
	commits := []models.Commit{
		commitAt(t, "2023-05-01T10:00:00Z"), // Monday
		commitAt(t, "2023-05-01T11:00:00Z"), // Monday
		commitAt(t, "2023-05-07T10:00:00Z"), // Sunday
	}

	applyCommitPatterns(patterns, commits)

	expected := []models.DayCount{
		{Day: 0, Count: 2},
		{Day: 6, Count: 1},
	}
	assert.Equal(t, expected, patterns.FavoriteCommitDays)
}

func TestComputeActivityPatterns(t *testing.T) {
	repos := []models.Repository{
		{Name: "old", CreatedAt: ts(t, "2015-01-01T00:00:00Z"), UpdatedAt: ts(t, "2023-05-10T00:00:00Z")},
		{Name: "new", CreatedAt: ts(t, "2024-06-01T00:00:00Z"), UpdatedAt: ts(t, "2024-06-02T00:00:00Z")},
		{Name: "mid", CreatedAt: ts(t, "2020-03-01T00:00:00Z"), UpdatedAt: ts(t, "2023-04-20T00:00:00Z")},
	}

	patterns, err := computeActivityPatterns(repos)
	require.NoError(t, err)

	assert.Equal(t, ts(t, "2024-06-01T00:00:00Z"), patterns.NewestRepo)
	assert.Equal(t, ts(t, "2015-01-01T00:00:00Z"), patterns.OldestRepo)
	assert.Equal(t, ts(t, "2024-06-02T00:00:00Z"), patterns.LastUpdate)

	// 2023-Q2 holds two updates, 2024-Q2 one; ties would keep first-seen order.
	expected := []models.QuarterCount{
		{Label: "2023-Q2", Count: 2},
		{Label: "2024-Q2", Count: 1},
	}
	assert.Equal(t, expected, patterns.UpdatesPerQuarter)
}

func TestComputeActivityPatternsEmpty(t *testing.T) {
	_, err := computeActivityPatterns(nil)

	var emptyErr *EmptyDataError
	require.ErrorAs(t, err, &emptyErr)
}

func TestAnalyzeEmptyRepos(t *testing.T) {
	fetcher := &stubFetcher{}
	a := New(fetcher, quietConfig(5))

	_, err := a.Analyze(context.Background(), "ghost")

	var emptyErr *EmptyDataError
	require.ErrorAs(t, err, &emptyErr)
	assert.Empty(t, fetcher.commitCalls)
}

func TestAnalyzeCommitRepoLimit(t *testing.T) {
	repos := make([]models.Repository, 0, 7)
	names := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7"}
	for _, name := range names {
		repos = append(repos, models.Repository{
			Name:      name,
			CreatedAt: ts(t, "2020-01-01T00:00:00Z"),
			UpdatedAt: ts(t, "2023-01-01T00:00:00Z"),
		})
	}
	fetcher := &stubFetcher{repos: repos}
	a := New(fetcher, quietConfig(5))

	_, err := a.Analyze(context.Background(), "someone")
	require.NoError(t, err)

	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, fetcher.commitCalls)
}

func TestAnalyzeAggregates(t *testing.T) {
	fetcher := &stubFetcher{
		user: &models.UserProfile{Login: "octocat", Name: "The Octocat"},
		repos: []models.Repository{
			{Name: "a", Stars: 5, SizeKB: 10, Language: "Go", CreatedAt: ts(t, "2020-01-01T00:00:00Z"), UpdatedAt: ts(t, "2023-05-10T00:00:00Z")},
			{Name: "b", Stars: 15, SizeKB: 30, Language: "Go", CreatedAt: ts(t, "2021-01-01T00:00:00Z"), UpdatedAt: ts(t, "2023-06-10T00:00:00Z")},
		},
		commits: map[string][]models.Commit{
			"a": {commitAt(t, "2023-05-01T09:00:00Z")},
			"b": {commitAt(t, "2023-05-02T22:00:00Z")},
		},
	}
	a := New(fetcher, quietConfig(5))

	result, err := a.Analyze(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", result.Username)
	assert.Equal(t, "The Octocat", result.User.Name)
	assert.Equal(t, 20, result.RepoStats.TotalStars)
	assert.InDelta(t, 10.0, result.RepoStats.AvgStarsPerRepo, 0.001)
	assert.Equal(t, 2, result.Activity.TotalCommits)
	assert.Equal(t, 1, result.Activity.CommitFrequency.Morning)
	assert.Equal(t, 1, result.Activity.CommitFrequency.Night)
}

func TestAnalyzePropagatesFetchErrors(t *testing.T) {
	sentinel := errors.New("boom")
	a := New(&failingFetcher{err: sentinel}, quietConfig(5))

	_, err := a.Analyze(context.Background(), "anyone")

	require.ErrorIs(t, err, sentinel)
}

type failingFetcher struct {
	err error
}

func (f *failingFetcher) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	return nil, f.err
}

func (f *failingFetcher) FetchRepos(ctx context.Context, username string) ([]models.Repository, error) {
	return nil, f.err
}

func (f *failingFetcher) FetchCommits(ctx context.Context, owner, repo string) ([]models.Commit, error) {
	return nil, f.err
}
