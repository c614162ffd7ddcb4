// Package issuekeys extracts tracker issue references from commit messages.
package issuekeys

import "regexp"

// Extract returns the distinct matches of pattern in text, in order of
// first occurrence. Matching spans line breaks; no matches yields an empty
// result, never an error.
func Extract(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		keys = append(keys, m)
	}

	return keys
}
