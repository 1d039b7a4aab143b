// Package textutil extracts @mentions and #hashtags from user content.
package textutil

import (
	"regexp"
	"strings"
)

var (
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// Mentions returns the handles mentioned in text, without the leading "@",
// deduplicated case-insensitively in first-seen order. Handles are lowered
// because usernames are case-folded at registration.
func Mentions(text string) []string {
	return extract(mentionPattern, text)
}

// Hashtags returns the tags in text, without the leading "#", lowercased and
// deduplicated in first-seen order.
func Hashtags(text string) []string {
	return extract(hashtagPattern, text)
}

// MergeTags unions extracted hashtags with explicitly supplied tags,
// lowercasing and deduplicating while preserving order. Empty entries and a
// stray leading "#" on explicit tags are dropped.
func MergeTags(content *string, explicit []string) []string {
	var merged []string
	seen := make(map[string]struct{})

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}

	if content != nil {
		for _, tag := range Hashtags(*content) {
			add(tag)
		}
	}
	for _, tag := range explicit {
		add(tag)
	}

	return merged
}

func extract(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		token := strings.ToLower(m[1])
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
