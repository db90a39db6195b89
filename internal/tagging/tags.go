// Package tagging groups pull requests by the subsystem tags in their titles,
// e.g. "[RUNTIME][BUGFIX] Fix thing".
package tagging

import (
	"html"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/naka-gawa/contrib-report/internal/domain"
)

const (
	// DefaultThreshold is the number of pull requests a tag needs to get its own bucket.
	DefaultThreshold = 5
	// DefaultCatchAll is the bucket for pull requests without a popular tag.
	DefaultCatchAll = "Fixes"
)

// ParsedTitle is a pull request title split into its tags and the remaining text.
type ParsedTitle struct {
	Tags    []string
	Display string
}

// ParseTitle extracts the normalized tags and the display title.
// Every "]"-terminated segment is a tag group which may hold comma-separated tags.
// A tag is kept once even if the title repeats it.
func ParseTitle(title string) ParsedTitle {
	segments := strings.Split(html.UnescapeString(title), "]")
	last := len(segments) - 1

	var tags []string
	seen := make(map[string]bool)
	for _, group := range segments[:last] {
		for _, raw := range strings.Split(group, ",") {
			tag := NormalizeTag(raw)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	return ParsedTitle{
		Tags:    tags,
		Display: strings.Trim(segments[last], "[] \t"),
	}
}

// NormalizeTag returns the canonical form of a tag: "[ runtime," becomes "Runtime".
func NormalizeTag(tag string) string {
	tag = strings.TrimFunc(tag, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("[]{},", r)
	})
	tag = strings.ToLower(tag)
	if tag == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(tag)
	return string(unicode.ToUpper(first)) + tag[size:]
}

// Entry is a pull request filed under a bucket.
type Entry struct {
	DisplayTitle string
	PullRequest  domain.PullRequest
}

// Buckets maps a tag to the pull requests filed under it.
// Accessors return copies, so a Buckets value cannot be changed after Bucket builds it.
type Buckets struct {
	catchAll string
	entries  map[string][]Entry
}

// Names returns the bucket names ordered by descending size, then by name.
// The catch-all bucket always comes last.
func (b Buckets) Names() []string {
	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		if name != b.catchAll {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(b.entries[names[i]]) != len(b.entries[names[j]]) {
			return len(b.entries[names[i]]) > len(b.entries[names[j]])
		}
		return names[i] < names[j]
	})
	if _, ok := b.entries[b.catchAll]; ok {
		names = append(names, b.catchAll)
	}
	return names
}

// Entries returns the pull requests of a bucket in input order.
func (b Buckets) Entries(name string) []Entry {
	entries := b.entries[name]
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of buckets.
func (b Buckets) Len() int {
	return len(b.entries)
}

// Bucketer files pull requests under their most popular tag.
type Bucketer struct {
	Threshold int
	CatchAll  string
}

// NewBucketer returns a Bucketer with the default threshold and catch-all bucket.
func NewBucketer() Bucketer {
	return Bucketer{Threshold: DefaultThreshold, CatchAll: DefaultCatchAll}
}

// Bucket assigns each pull request to exactly one bucket.
//
// Each pull request goes to the tag it carries with the highest count across
// the whole input; the earlier tag in its title wins a tie. If that count is
// below the threshold, or the pull request has no tags, it goes to the
// catch-all bucket instead. The catch-all name gets no special treatment when
// it shows up as a regular tag.
func (bk Bucketer) Bucket(prs []domain.PullRequest) Buckets {
	parsed := make([]ParsedTitle, len(prs))
	counts := make(map[string]int)
	for i, pr := range prs {
		parsed[i] = ParseTitle(pr.GetTitle())
		for _, tag := range parsed[i].Tags {
			counts[tag]++
		}
	}

	entries := make(map[string][]Entry)
	for i, pr := range prs {
		top, topCount := "", 0
		for _, tag := range parsed[i].Tags {
			if counts[tag] > topCount {
				top, topCount = tag, counts[tag]
			}
		}
		bucket := top
		if top == "" || topCount < bk.Threshold {
			bucket = bk.CatchAll
		}
		entries[bucket] = append(entries[bucket], Entry{DisplayTitle: parsed[i].Display, PullRequest: pr})
	}

	return Buckets{catchAll: bk.CatchAll, entries: entries}
}
