package mailroom

import (
	"path"
	"regexp"
	"strings"
)

// PatternMatches reports whether an address or subject matches a rule
// pattern. Matching is case-insensitive and tries, in order: glob (when the
// pattern carries wildcards), exact equality, substring containment, and
// finally the pattern as a regular expression. An empty pattern matches
// everything.
func PatternMatches(pattern, value string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	value = strings.ToLower(strings.TrimSpace(value))
	if pattern == "" {
		return true
	}

	if strings.ContainsAny(pattern, "*?[") {
		if ok, err := path.Match(pattern, value); err == nil && ok {
			return true
		}
	}
	if pattern == value {
		return true
	}
	if strings.Contains(value, pattern) {
		return true
	}
	if re, err := regexp.Compile(pattern); err == nil && re.MatchString(value) {
		return true
	}
	return false
}

// KeywordsMatch reports whether any comma-separated keyword occurs in the
// body, case-insensitively. An empty keyword list matches everything.
func KeywordsMatch(keywordsCSV, body string) bool {
	keywordsCSV = strings.TrimSpace(keywordsCSV)
	if keywordsCSV == "" {
		return true
	}
	body = strings.ToLower(body)
	for _, kw := range strings.Split(keywordsCSV, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(body, kw) {
			return true
		}
	}
	return false
}
