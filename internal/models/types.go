package models

import "time"

// UserProfile is a one-shot snapshot of a user's public profile.
type UserProfile struct {
	Login       string
	Name        string
	Bio         string
	Location    string
	Company     string
	Blog        string
	Followers   int
	Following   int
	PublicRepos int
	CreatedAt   time.Time
}

// Repository holds the repository metadata the analysis consumes.
// Repositories keep the order the listing endpoint paged them out in.
type Repository struct {
	Name      string
	Language  string // "" when GitHub reports none
	Stars     int
	Forks     int
	Watchers  int
	SizeKB    int
	License   string // "" when unlicensed
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Commit carries only the author timestamp; nothing else is analyzed.
type Commit struct {
	AuthoredAt time.Time // UTC
}

// Ranked counts are slices rather than maps so tie order survives.

type LanguageCount struct {
	Name  string
	Count int
}

type LicenseCount struct {
	Name  string
	Count int
}

type HourCount struct {
	Hour  int // 0-23
	Count int
}

// DayCount uses the Monday=0 .. Sunday=6 convention.
type DayCount struct {
	Day   int
	Count int
}

// QuarterCount labels are "YYYY-Qn".
type QuarterCount struct {
	Label string
	Count int
}

// TimeOfDayCounts buckets commit hours into morning [5,12),
// afternoon [12,17), evening [17,22) and night [22,24)+[0,5).
type TimeOfDayCounts struct {
	Morning   int
	Afternoon int
	Evening   int
	Night     int
}

func (t TimeOfDayCounts) Total() int {
	return t.Morning + t.Afternoon + t.Evening + t.Night
}

type RepoStats struct {
	TotalRepos      int
	TotalStars      int
	TotalForks      int
	TotalWatchers   int
	TopLanguages    []LanguageCount // top 10 by count
	Licenses        []LicenseCount  // top 5 by count
	AvgStarsPerRepo float64
	AvgRepoSize     float64 // KB
	MedianRepoSize  float64 // KB
	RepoSizes       []int   // per repo, listing order
}

type ActivityPatterns struct {
	NewestRepo          time.Time
	OldestRepo          time.Time
	LastUpdate          time.Time
	UpdatesPerQuarter   []QuarterCount // ranked by count descending
	FavoriteCommitHours []HourCount    // top 3
	FavoriteCommitDays  []DayCount     // all observed days, ranked
	CommitFrequency     TimeOfDayCounts
	TotalCommits        int
}

// AnalysisResult is built once per run and never mutated afterwards.
type AnalysisResult struct {
	Username  string
	User      UserProfile
	RepoStats RepoStats
	Activity  ActivityPatterns
}
