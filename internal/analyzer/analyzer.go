// Package analyzer turns raw profile, repository and commit records into a
// single AnalysisResult. Everything runs sequentially; one failed fetch
// aborts the run with no partial result.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gnomegl/gitgaze/internal/models"
	"github.com/schollz/progressbar/v3"
)

// EmptyDataError reports an aggregate that is undefined on empty input,
// such as the newest repository of a user with no repositories.
type EmptyDataError struct {
	What string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no data to compute %s", e.What)
}

// Fetcher is the slice of the GitHub API the analyzer consumes.
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*models.UserProfile, error)
	FetchRepos(ctx context.Context, username string) ([]models.Repository, error)
	FetchCommits(ctx context.Context, owner, repo string) ([]models.Commit, error)
}

type Config struct {
	// CommitRepoLimit caps commit-pattern analysis to the first N
	// repositories in listing order. Commit history is the expensive
	// part of a run, so this stays small.
	CommitRepoLimit int
	// ProgressWriter receives the commit-fetch progress bar. Leave nil
	// to silence it.
	ProgressWriter io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		CommitRepoLimit: 5,
		ProgressWriter:  os.Stderr,
	}
}

type Analyzer struct {
	fetcher Fetcher
	cfg     Config
}

func New(fetcher Fetcher, cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.CommitRepoLimit <= 0 {
		c.CommitRepoLimit = DefaultConfig().CommitRepoLimit
	}
	if c.ProgressWriter == nil {
		c.ProgressWriter = io.Discard
	}
	return &Analyzer{fetcher: fetcher, cfg: c}
}

// Analyze fetches username's profile, repositories and a capped commit
// sample, and aggregates them. A user with zero repositories yields an
// EmptyDataError because the activity extrema are undefined.
func (a *Analyzer) Analyze(ctx context.Context, username string) (*models.AnalysisResult, error) {
	user, err := a.fetcher.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := a.fetcher.FetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	activity, err := computeActivityPatterns(repos)
	if err != nil {
		return nil, err
	}

	commits, err := a.fetchCommitSample(ctx, username, repos)
	if err != nil {
		return nil, err
	}
	applyCommitPatterns(activity, commits)

	return &models.AnalysisResult{
		Username:  username,
		User:      *user,
		RepoStats: computeRepoStats(repos),
		Activity:  *activity,
	}, nil
}

// computeRepoStats aggregates per-repository metadata. Every statistic is
// defined on empty input: sums and averages come out zero, rankings empty.
func computeRepoStats(repos []models.Repository) models.RepoStats {
	stats := models.RepoStats{TotalRepos: len(repos)}

	languages := newTally[string]()
	licenses := newTally[string]()
	sizes := make([]int, 0, len(repos))

	for _, r := range repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
		stats.TotalWatchers += r.Watchers
		sizes = append(sizes, r.SizeKB)
		if r.Language != "" {
			languages.Add(r.Language)
		}
		if r.License != "" {
			licenses.Add(r.License)
		}
	}

	for _, e := range topN(languages.Ranked(), 10) {
		stats.TopLanguages = append(stats.TopLanguages, models.LanguageCount{Name: e.Key, Count: e.Count})
	}
	for _, e := range topN(licenses.Ranked(), 5) {
		stats.Licenses = append(stats.Licenses, models.LicenseCount{Name: e.Key, Count: e.Count})
	}

	if len(repos) > 0 {
		stats.AvgStarsPerRepo = float64(stats.TotalStars) / float64(len(repos))
	}
	stats.AvgRepoSize = meanInts(sizes)
	stats.MedianRepoSize = medianInts(sizes)
	stats.RepoSizes = sizes
	return stats
}

func computeActivityPatterns(repos []models.Repository) (*models.ActivityPatterns, error) {
	if len(repos) == 0 {
		return nil, &EmptyDataError{What: "repository activity extrema"}
	}

	patterns := &models.ActivityPatterns{
		NewestRepo: repos[0].CreatedAt,
		OldestRepo: repos[0].CreatedAt,
		LastUpdate: repos[0].UpdatedAt,
	}

	quarters := newTally[string]()
	for _, r := range repos {
		if r.CreatedAt.After(patterns.NewestRepo) {
			patterns.NewestRepo = r.CreatedAt
		}
		if r.CreatedAt.Before(patterns.OldestRepo) {
			patterns.OldestRepo = r.CreatedAt
		}
		if r.UpdatedAt.After(patterns.LastUpdate) {
			patterns.LastUpdate = r.UpdatedAt
		}
		quarters.Add(quarterLabel(r.UpdatedAt))
	}

	for _, e := range quarters.Ranked() {
		patterns.UpdatesPerQuarter = append(patterns.UpdatesPerQuarter, models.QuarterCount{Label: e.Key, Count: e.Count})
	}
	return patterns, nil
}

// quarterLabel buckets a timestamp into its calendar quarter,
// e.g. 2023-05-10 -> "2023-Q2".
func quarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

// fetchCommitSample pulls commits for the first CommitRepoLimit
// repositories, in the order the listing returned them.
func (a *Analyzer) fetchCommitSample(ctx context.Context, username string, repos []models.Repository) ([]models.Commit, error) {
	sample := repos
	if len(sample) > a.cfg.CommitRepoLimit {
		sample = sample[:a.cfg.CommitRepoLimit]
	}

	bar := progressbar.NewOptions(len(sample),
		progressbar.OptionSetWriter(a.cfg.ProgressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Analyzing commit history"))

	var commits []models.Commit
	for _, repo := range sample {
		repoCommits, err := a.fetcher.FetchCommits(ctx, username, repo.Name)
		if err != nil {
			return nil, err
		}
		commits = append(commits, repoCommits...)
		bar.Add(1)
	}
	bar.Finish()
	return commits, nil
}

// mondayIndex maps time.Weekday (Sunday=0) onto the Monday=0 convention
// used throughout the analysis.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func applyCommitPatterns(patterns *models.ActivityPatterns, commits []models.Commit) {
	hours := newTally[int]()
	days := newTally[int]()

	for _, c := range commits {
		ts := c.AuthoredAt.UTC()
		hour := ts.Hour()
		hours.Add(hour)
		days.Add(mondayIndex(ts.Weekday()))

		switch {
		case hour >= 5 && hour < 12:
			patterns.CommitFrequency.Morning++
		case hour >= 12 && hour < 17:
			patterns.CommitFrequency.Afternoon++
		case hour >= 17 && hour < 22:
			patterns.CommitFrequency.Evening++
		default: // [22,24) and [0,5)
			patterns.CommitFrequency.Night++
		}
	}

	for _, e := range topN(hours.Ranked(), 3) {
		patterns.FavoriteCommitHours = append(patterns.FavoriteCommitHours, models.HourCount{Hour: e.Key, Count: e.Count})
	}
	for _, e := range days.Ranked() {
		patterns.FavoriteCommitDays = append(patterns.FavoriteCommitDays, models.DayCount{Day: e.Key, Count: e.Count})
	}
	patterns.TotalCommits = len(commits)
}

// meanInts and medianInts are defined as 0 on empty input so empty
// repository lists never divide by zero.
func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func medianInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}
