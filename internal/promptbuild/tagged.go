package promptbuild

import (
	"regexp"
	"strings"
)

var tagPatterns = compileTagPatterns()

func compileTagPatterns() map[Tag]*regexp.Regexp {
	patterns := make(map[Tag]*regexp.Regexp, len(WireOrder))
	for _, tag := range WireOrder {
		t := regexp.QuoteMeta(string(tag))
		patterns[tag] = regexp.MustCompile(`(?s)<` + t + `>(.*?)</` + t + `>`)
	}
	return patterns
}

// Extract returns the whitespace-trimmed content of the first <tag>...</tag>
// pair in text, spanning newlines. A missing pair yields "".
//
// Content that itself contains the closing marker is cut at its first
// occurrence.
func Extract(tag Tag, text string) string {
	re, ok := tagPatterns[tag]
	if !ok {
		t := regexp.QuoteMeta(string(tag))
		re = regexp.MustCompile(`(?s)<` + t + `>(.*?)</` + t + `>`)
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseTagged extracts every section of a serialized prompt.
func ParseTagged(text string) Record {
	rec := NewRecord()
	for _, tag := range WireOrder {
		rec.Set(tag, Extract(tag, text))
	}
	return rec
}
