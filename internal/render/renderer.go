// Package render writes the monthly report from a mustache template.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/naka-gawa/contrib-report/internal/tagging"
)

//go:embed template.md
var defaultTemplate string

// DefaultTemplate returns the template shipped with the package.
func DefaultTemplate() string {
	return defaultTemplate
}

// Renderer substitutes {{key}} placeholders of a template.
type Renderer struct {
	template string
}

// NewRenderer creates a Renderer for the given template text.
func NewRenderer(template string) *Renderer {
	return &Renderer{template: template}
}

// NewRendererFromFile creates a Renderer for the template stored at path.
// An empty path selects the default template.
func NewRendererFromFile(path string) (*Renderer, error) {
	if path == "" {
		return NewRenderer(defaultTemplate), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return NewRenderer(string(data)), nil
}

// RenderString returns the rendered document.
// Fields are inserted verbatim: the output is markdown, not HTML.
func (r *Renderer) RenderString(fields map[string]string) (string, error) {
	tmpl, err := mustache.ParseStringRaw(r.template, true)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	content, err := tmpl.Render(fields)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return content, nil
}

// Render writes the rendered document to outputPath, replacing any existing file.
func (r *Renderer) Render(outputPath string, fields map[string]string) error {
	content, err := r.RenderString(fields)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", outputPath, err)
	}
	return nil
}

// FormatBuckets pre-renders the pull request listing, one section per bucket.
func FormatBuckets(buckets tagging.Buckets) string {
	var sb strings.Builder
	for i, name := range buckets.Names() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "### %s\n", name)
		for _, entry := range buckets.Entries(name) {
			pr := entry.PullRequest
			fmt.Fprintf(&sb, "- %s ([#%d](%s))\n", entry.DisplayTitle, pr.GetNumber(), pr.GetHTMLURL())
		}
	}
	return sb.String()
}
