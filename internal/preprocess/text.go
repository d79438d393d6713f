package preprocess

import (
	"regexp"
	"sort"
	"strings"
)

// acronyms maps lowercased social-media acronyms to their expansions. Replacement
// is case-insensitive and whole-token only.
var acronyms = map[string]string{
	"brb":  "be right back",
	"idk":  "I don't know",
	"btw":  "by the way",
	"ttyl": "talk to you later",
	"imo":  "in my opinion",
	"imho": "in my humble opinion",
	"fyi":  "for your information",
	"tmi":  "too much information",
	"byob": "bring your own beer",
}

var (
	acronymPattern = compileAcronymPattern()
	mentionPattern = regexp.MustCompile(`@\w+`)
	urlPattern     = regexp.MustCompile(`http[s]?://\S+`)
	hashPattern    = regexp.MustCompile(`(^|\s)#`)
)

const retweetMarker = "RT : "

func compileAcronymPattern() *regexp.Regexp {
	keys := make([]string, 0, len(acronyms))
	for k := range acronyms {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// Longest key first so e.g. "imho" is never matched as "imo".
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(keys, "|") + `)\b`)
}

func expandAcronyms(text string) string {
	return acronymPattern.ReplaceAllStringFunc(text, func(match string) string {
		return acronyms[strings.ToLower(match)]
	})
}

// CleanText normalizes one raw tweet: expands acronyms, strips @mentions, URLs,
// the "RT : " retweet marker and token-leading '#', folds newlines, and collapses
// runs of whitespace. The result is stable under repeated application.
func CleanText(raw string) string {
	text := cleanPass(raw)
	// A strip can expose input for an earlier stage ("##tag" leaves a leading
	// '#', "#RT : x" leaves the retweet marker), so repeat the pass until the
	// text stops changing.
	for {
		next := cleanPass(text)
		if next == text {
			return text
		}
		text = next
	}
}

func cleanPass(raw string) string {
	text := expandAcronyms(raw)

	text = mentionPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	text = urlPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	for strings.HasPrefix(text, retweetMarker) {
		text = strings.TrimSpace(text[len(retweetMarker):])
	}

	text = hashPattern.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "\n", " ")

	return strings.Join(strings.Fields(text), " ")
}

// CleanBatch normalizes every text in input order with the same pipeline as
// CleanText, so both paths produce identical cleaned text.
func CleanBatch(raws []string) []string {
	cleaned := make([]string, len(raws))
	for i, raw := range raws {
		cleaned[i] = CleanText(raw)
	}
	return cleaned
}
