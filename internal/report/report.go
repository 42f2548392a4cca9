// Package report renders an AnalysisResult as a fixed multi-section text
// report. Rendering is pure formatting: the same input always produces the
// same bytes.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gnomegl/gitgaze/internal/models"
)

// dayNames follows the Monday=0 convention of models.DayCount.
var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const dateLayout = "2006-01-02"

func Render(res *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "GitHub Profile Analysis for %s\n", res.Username)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	section(&b, "User Information")
	fmt.Fprintf(&b, "Name: %s\n", res.User.Name)
	fmt.Fprintf(&b, "Bio: %s\n", res.User.Bio)
	fmt.Fprintf(&b, "Location: %s\n", res.User.Location)
	fmt.Fprintf(&b, "Company: %s\n", res.User.Company)
	fmt.Fprintf(&b, "Blog: %s\n", res.User.Blog)
	fmt.Fprintf(&b, "Followers: %d\n", res.User.Followers)
	fmt.Fprintf(&b, "Following: %d\n", res.User.Following)
	fmt.Fprintf(&b, "Public Repositories: %d\n", res.User.PublicRepos)
	fmt.Fprintf(&b, "Account Created: %s\n\n", res.User.CreatedAt.Format(time.RFC3339))

	stats := res.RepoStats
	section(&b, "Repository Statistics")
	fmt.Fprintf(&b, "Total Repositories: %d\n", stats.TotalRepos)
	fmt.Fprintf(&b, "Total Stars: %d\n", stats.TotalStars)
	fmt.Fprintf(&b, "Total Forks: %d\n", stats.TotalForks)
	fmt.Fprintf(&b, "Total Watchers: %d\n", stats.TotalWatchers)
	fmt.Fprintf(&b, "Average Stars per Repository: %.1f\n", stats.AvgStarsPerRepo)
	fmt.Fprintf(&b, "Average Repository Size: %.1f KB\n", stats.AvgRepoSize)
	fmt.Fprintf(&b, "Median Repository Size: %.1f KB\n\n", stats.MedianRepoSize)

	section(&b, "Top Languages")
	if len(stats.TopLanguages) == 0 {
		b.WriteString("(none)\n")
	}
	for _, l := range stats.TopLanguages {
		fmt.Fprintf(&b, "%s: %d\n", l.Name, l.Count)
	}
	b.WriteString("\n")

	section(&b, "License Usage")
	if len(stats.Licenses) == 0 {
		b.WriteString("(none)\n")
	}
	for _, l := range stats.Licenses {
		fmt.Fprintf(&b, "%s: %d\n", l.Name, l.Count)
	}
	b.WriteString("\n")

	act := res.Activity
	section(&b, "Activity Patterns")
	fmt.Fprintf(&b, "Newest Repository: %s\n", act.NewestRepo.Format(dateLayout))
	fmt.Fprintf(&b, "Oldest Repository: %s\n", act.OldestRepo.Format(dateLayout))
	fmt.Fprintf(&b, "Last Update: %s\n\n", act.LastUpdate.Format(dateLayout))

	section(&b, "Commit Patterns")
	fmt.Fprintf(&b, "Favorite Commit Hours: %s\n", formatHours(act.FavoriteCommitHours))
	fmt.Fprintf(&b, "Favorite Commit Days: %s\n\n", formatDays(act.FavoriteCommitDays))

	section(&b, "Time of Day Distribution")
	freq := act.CommitFrequency
	fmt.Fprintf(&b, "Morning (5-12): %d commits\n", freq.Morning)
	fmt.Fprintf(&b, "Afternoon (12-17): %d commits\n", freq.Afternoon)
	fmt.Fprintf(&b, "Evening (17-22): %d commits\n", freq.Evening)
	fmt.Fprintf(&b, "Night (22-5): %d commits\n", freq.Night)

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + ":\n")
	b.WriteString(strings.Repeat("-", len(title)) + "\n")
}

func formatHours(hours []models.HourCount) string {
	if len(hours) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%d:00 (%d commits)", h.Hour, h.Count))
	}
	return strings.Join(parts, ", ")
}

func formatDays(days []models.DayCount) string {
	if len(days) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, fmt.Sprintf("%s (%d commits)", dayNames[d.Day], d.Count))
	}
	return strings.Join(parts, ", ")
}
