package usecase

import "fmt"

// AuthorQuery matches the pull requests login opened that were updated within dateFilter.
func AuthorQuery(repo, login, dateFilter string) string {
	return fmt.Sprintf("repo:%s author:%s updated:%s is:pr", repo, login, dateFilter)
}

// CommenterQuery matches the pull requests login commented on that were updated within dateFilter.
func CommenterQuery(repo, login, dateFilter string) string {
	return fmt.Sprintf("repo:%s commenter:%s updated:%s is:pr", repo, login, dateFilter)
}

// MergedQuery matches the pull requests merged within dateFilter, oldest update first.
func MergedQuery(repo, dateFilter string) string {
	return fmt.Sprintf("repo:%s is:pr merged:%s sort:updated-asc", repo, dateFilter)
}
