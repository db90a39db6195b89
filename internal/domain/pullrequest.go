package domain

import "fmt"

// PullRequest is the read-only view of a pull request the report needs.
// *github.Issue from go-github satisfies it as well.
type PullRequest interface {
	GetNumber() int
	GetTitle() string
	GetHTMLURL() string
}

// PullRequestRef is the concrete PullRequest produced by the gateway.
// It is a plain value so that a ReportBundle can be serialized.
type PullRequestRef struct {
	Number  int
	Title   string
	HTMLURL string
}

// NewPullRequestRef copies any PullRequest into a PullRequestRef.
func NewPullRequestRef(pr PullRequest) PullRequestRef {
	if ref, ok := pr.(PullRequestRef); ok {
		return ref
	}
	return PullRequestRef{Number: pr.GetNumber(), Title: pr.GetTitle(), HTMLURL: pr.GetHTMLURL()}
}

func (p PullRequestRef) GetNumber() int     { return p.Number }
func (p PullRequestRef) GetTitle() string   { return p.Title }
func (p PullRequestRef) GetHTMLURL() string { return p.HTMLURL }

// FormatActivity renders a pull request the way activity sets store it: "title (#number)".
func FormatActivity(pr PullRequest) string {
	return fmt.Sprintf("%s (#%d)", pr.GetTitle(), pr.GetNumber())
}
