package usecase

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/pterm/pterm"
)

// ActivityKind selects one side of an ActivityRecord.
type ActivityKind int

const (
	Authored ActivityKind = iota
	Reviewed
)

func (k ActivityKind) String() string {
	if k == Reviewed {
		return "reviewed"
	}
	return "authored"
}

func (k ActivityKind) items(record domain.ActivityRecord) []string {
	if k == Reviewed {
		return record.Reviewed
	}
	return record.Authored
}

// Rank lists the team members with at least one pull request of the given kind,
// most active first. Members with equal counts keep their team order.
func Rank(team []string, activity map[string]domain.ActivityRecord, kind ActivityKind) []domain.Contribution {
	ranked := []domain.Contribution{}
	for _, member := range team {
		if n := len(kind.items(activity[member])); n > 0 {
			ranked = append(ranked, domain.Contribution{Login: member, Count: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// FormatRanking renders a ranking as "alice (3), bob (1)".
func FormatRanking(ranked []domain.Contribution) string {
	parts := make([]string, len(ranked))
	for i, c := range ranked {
		parts[i] = fmt.Sprintf("%s (%d)", c.Login, c.Count)
	}
	return strings.Join(parts, ", ")
}

// Summarize computes the spread of a ranking.
func Summarize(ranked []domain.Contribution) (domain.ActivityStats, error) {
	if len(ranked) == 0 {
		return domain.ActivityStats{}, nil
	}
	data := make(stats.Float64Data, len(ranked))
	total := 0
	for i, c := range ranked {
		data[i] = float64(c.Count)
		total += c.Count
	}

	mean, err := data.Mean()
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("failed to compute median: %w", err)
	}
	maxCount, err := data.Max()
	if err != nil {
		return domain.ActivityStats{}, fmt.Errorf("failed to compute max: %w", err)
	}
	return domain.ActivityStats{
		Members: len(ranked),
		Total:   total,
		Mean:    mean,
		Median:  median,
		Max:     maxCount,
	}, nil
}

// FormatSummary renders the authored and reviewed statistics for the report.
func FormatSummary(authored, reviewed domain.ActivityStats) string {
	return fmt.Sprintf("This month %d contributors authored %d pull requests (mean %.1f, median %.1f, max %.0f) "+
		"and %d reviewers reviewed %d pull requests (mean %.1f, median %.1f, max %.0f).",
		authored.Members, authored.Total, authored.Mean, authored.Median, authored.Max,
		reviewed.Members, reviewed.Total, reviewed.Mean, reviewed.Median, reviewed.Max)
}

// PrintDetails writes every ranked member followed by their pull requests.
func PrintDetails(out io.Writer, ranked []domain.Contribution, activity map[string]domain.ActivityRecord, kind ActivityKind) {
	heading, color := "Author", pterm.FgBlue
	if kind == Reviewed {
		heading, color = "Reviewer", pterm.FgGreen
	}
	fmt.Fprintf(out, "\n# %s details:\n%s\n", heading, strings.Repeat("=", 70))
	for _, c := range ranked {
		fmt.Fprintln(out, color.Sprint(c.Login))
		fmt.Fprintln(out, strings.Join(kind.items(activity[c.Login]), "\n"))
	}
}
