package tagging

import (
	"testing"

	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prs(titles ...string) []domain.PullRequest {
	out := make([]domain.PullRequest, len(titles))
	for i, title := range titles {
		out[i] = domain.PullRequestRef{Number: i + 1, Title: title, HTMLURL: "https://example.com/pull/" + title}
	}
	return out
}

func displayTitles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.DisplayTitle
	}
	return out
}

func TestParseTitle(t *testing.T) {
	testCases := []struct {
		name            string
		title           string
		expectedTags    []string
		expectedDisplay string
	}{
		{name: "single tag", title: "[RUNTIME] Fix thing", expectedTags: []string{"Runtime"}, expectedDisplay: "Fix thing"},
		{name: "stacked tags", title: "[RUNTIME][BUGFIX] Fix thing", expectedTags: []string{"Runtime", "Bugfix"}, expectedDisplay: "Fix thing"},
		{name: "comma separated tags", title: "[RUNTIME,CI] Improve build", expectedTags: []string{"Runtime", "Ci"}, expectedDisplay: "Improve build"},
		{name: "comma with spaces", title: "[Relay, TOPI]\tAdd op", expectedTags: []string{"Relay", "Topi"}, expectedDisplay: "Add op"},
		{name: "no brackets", title: "Fix memory leak", expectedTags: nil, expectedDisplay: "Fix memory leak"},
		{name: "html escaped title", title: "[CODEGEN] Handle a &amp; b &lt;T&gt;", expectedTags: []string{"Codegen"}, expectedDisplay: "Handle a & b <T>"},
		{name: "empty tag dropped", title: "[] [ , ] Tidy", expectedTags: nil, expectedDisplay: "Tidy"},
		{name: "repeated tag counted once", title: "[CI][ci] Bump", expectedTags: []string{"Ci"}, expectedDisplay: "Bump"},
		{name: "braces stripped", title: "{[Docs]} Typo", expectedTags: []string{"Docs"}, expectedDisplay: "} Typo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseTitle(tc.title)
			assert.Equal(t, tc.expectedTags, parsed.Tags)
			assert.Equal(t, tc.expectedDisplay, parsed.Display)
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	testCases := map[string]string{
		"runtime":      "Runtime",
		"RUNTIME":      "Runtime",
		"[RUNTIME":     "Runtime",
		" {ci}, ":      "Ci",
		"Fixes":        "Fixes",
		"":             "",
		"[]":           "",
		"tvm script":   "Tvm script",
		"ÉCOLE":        "École",
		"\tMeta-Sched": "Meta-sched",
	}
	for input, expected := range testCases {
		assert.Equal(t, expected, NormalizeTag(input), "input %q", input)
	}
}

func TestNormalizeTag_Idempotent(t *testing.T) {
	inputs := []string{
		"runtime", "RUNTIME", "[RUNTIME]", " {ci}, ", "", "[]", ",,", "ßtraße", "ǆemal",
		"ıdotless", "ſlong", "ςfinal", "Kelvin", "  [ Mixed Case Tag ] ", "\xffbroken", "日本語",
	}
	for _, input := range inputs {
		once := NormalizeTag(input)
		assert.Equal(t, once, NormalizeTag(once), "input %q", input)
	}
}

func TestBucketer_Bucket(t *testing.T) {
	t.Run("popular tag gets its own bucket, rare tag goes to catch-all", func(t *testing.T) {
		buckets := NewBucketer().Bucket(prs(
			"[RUNTIME] Fix A", "[RUNTIME] Fix B", "[RUNTIME] Fix C",
			"[RUNTIME] Fix D", "[RUNTIME] Fix E", "[DOCS] Typo",
		))

		assert.Equal(t, []string{"Runtime", "Fixes"}, buckets.Names())
		assert.Equal(t, []string{"Fix A", "Fix B", "Fix C", "Fix D", "Fix E"}, displayTitles(buckets.Entries("Runtime")))
		assert.Equal(t, []string{"Typo"}, displayTitles(buckets.Entries("Fixes")))
		assert.Nil(t, buckets.Entries("Docs"))
	})

	t.Run("untagged title always lands in catch-all", func(t *testing.T) {
		buckets := NewBucketer().Bucket(prs(
			"[RUNTIME] Fix A", "[RUNTIME] Fix B", "[RUNTIME] Fix C",
			"[RUNTIME] Fix D", "[RUNTIME] Fix E", "Fix memory leak",
		))

		fixes := buckets.Entries("Fixes")
		require.Len(t, fixes, 1)
		assert.Equal(t, "Fix memory leak", fixes[0].DisplayTitle)
		assert.Equal(t, 6, fixes[0].PullRequest.GetNumber())
	})

	t.Run("multi-tag title follows the more popular tag", func(t *testing.T) {
		buckets := NewBucketer().Bucket(prs(
			"[CI] a", "[CI] b", "[CI] c", "[CI] d", "[CI] e", "[CI] f",
			"[RUNTIME] g", "[RUNTIME] h", "[RUNTIME] i", "[RUNTIME] j",
			"[RUNTIME,CI] Improve build",
		))

		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "Improve build"}, displayTitles(buckets.Entries("Ci")))
		assert.Equal(t, []string{"g", "h", "i", "j"}, displayTitles(buckets.Entries("Runtime")))
	})

	t.Run("tie is broken by tag order in the title", func(t *testing.T) {
		buckets := NewBucketer().Bucket(prs(
			"[A] 1", "[A] 2", "[A] 3", "[A] 4",
			"[B] 5", "[B] 6", "[B] 7", "[B] 8",
			"[B,A] both",
		))

		assert.Equal(t, []string{"5", "6", "7", "8", "both"}, displayTitles(buckets.Entries("B")))
		assert.Equal(t, []string{"1", "2", "3", "4"}, displayTitles(buckets.Entries("A")))
		assert.Nil(t, buckets.Entries("Fixes"))
	})

	t.Run("catch-all name as a tag is counted like any other", func(t *testing.T) {
		buckets := NewBucketer().Bucket(prs("[FIXES] one", "untagged"))
		assert.Equal(t, []string{"one", "untagged"}, displayTitles(buckets.Entries("Fixes")))
		assert.Equal(t, 1, buckets.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		buckets := NewBucketer().Bucket(nil)
		assert.Equal(t, 0, buckets.Len())
		assert.Empty(t, buckets.Names())
	})

	t.Run("custom threshold", func(t *testing.T) {
		bucketer := Bucketer{Threshold: 1, CatchAll: "Misc"}
		buckets := bucketer.Bucket(prs("[DOCS] Typo", "plain"))
		assert.Equal(t, []string{"Docs", "Misc"}, buckets.Names())
	})
}

func TestBuckets_EntriesReturnsCopy(t *testing.T) {
	buckets := NewBucketer().Bucket(prs("plain"))
	entries := buckets.Entries("Fixes")
	entries[0].DisplayTitle = "changed"
	assert.Equal(t, "plain", buckets.Entries("Fixes")[0].DisplayTitle)
}

func TestBuckets_NamesOrder(t *testing.T) {
	titles := []string{}
	for i := 0; i < 5; i++ {
		titles = append(titles, "[B] b", "[A] a")
	}
	for i := 0; i < 6; i++ {
		titles = append(titles, "[C] c")
	}
	titles = append(titles, "plain")

	buckets := NewBucketer().Bucket(prs(titles...))
	assert.Equal(t, []string{"C", "A", "B", "Fixes"}, buckets.Names())
}
