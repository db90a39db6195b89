package domain

import "sort"

// ActivityRecord holds what a single contributor did during the report month.
// Both fields are sorted sets of "title (#number)" strings and never share an element.
type ActivityRecord struct {
	Authored []string
	Reviewed []string
}

// NewActivityRecord builds a record from the raw search results.
// A pull request the contributor authored is never counted as one of their reviews,
// so self-comments on their own work are dropped from the reviewed set.
func NewActivityRecord(authored, commented []string) ActivityRecord {
	authoredSet := toSet(authored)
	reviewedSet := toSet(commented)
	for item := range authoredSet {
		delete(reviewedSet, item)
	}
	return ActivityRecord{
		Authored: sortedKeys(authoredSet),
		Reviewed: sortedKeys(reviewedSet),
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
