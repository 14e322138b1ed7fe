package ambassadorsvc

import (
	"regexp"
	"strings"
)

// hashtagPattern matches #-prefixed tags, including Swedish letters.
var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)

// dateTagPattern matches tags carrying an explicit follow-up date suffix,
// e.g. "ringabak-2025-09-15".
var dateTagPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}$`)

// tagKeywords maps free-text keywords to the canonical tag they imply. Keys
// are matched case-insensitively as substrings of the activity text.
var tagKeywords = map[string]string{
	"hett":     "hett",
	"hot":      "hett",
	"ringabak": "ringabak",
	"ring":     "ringabak",
	"problem":  "problem",
	"akut":     "akut",
	"urgent":   "akut",
	"nöjd":     "nöjd",
	"budget":   "budget",
	"kontrakt": "kontrakt",
	"avtal":    "kontrakt",
}

// ExtractTags harvests canonical tags from free text: explicit hashtags plus
// keyword heuristics. The result is deduplicated and lowercased.
func ExtractTags(text string) []string {
	seen := map[string]bool{}
	var tags []string

	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		add(match[1])
	}

	lower := strings.ToLower(text)
	for keyword, tag := range tagKeywords {
		if strings.Contains(lower, keyword) {
			add(tag)
		}
	}

	return tags
}

// MergeTags unions tag slices, preserving first-seen order.
func MergeTags(groups ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range groups {
		for _, tag := range group {
			tag = strings.ToLower(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// hasTag reports whether tags contains tag (already lowercased) or a
// date-suffixed variant of it.
func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag || strings.HasPrefix(t, tag+"-") {
			return true
		}
	}
	return false
}

// hasDateTag reports whether any tag carries an explicit follow-up date
// suffix.
func hasDateTag(tags []string) bool {
	for _, t := range tags {
		if dateTagPattern.MatchString(t) {
			return true
		}
	}
	return false
}
