// Package codename derives short goal identifiers from goal text.
package codename

import (
	"regexp"
	"strings"

	"github.com/rs/xid"
)

const (
	maxWords  = 3
	suffixLen = 4
	fallback  = "goal"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Words that carry no meaning in a codename.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "to": {}, "of": {},
	"for": {}, "in": {}, "on": {}, "at": {}, "by": {}, "with": {}, "my": {},
	"i": {}, "is": {}, "be": {}, "it": {}, "this": {}, "that": {}, "from": {},
	"into": {}, "more": {}, "some": {},
}

// Slug returns a lower-case hyphenated slug of up to three meaningful words
// from text. Returns "goal" when text has no usable words.
func Slug(text string) string {
	fields := strings.Fields(nonAlnumRe.ReplaceAllString(strings.ToLower(text), " "))

	var words []string
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		words = append(words, f)
		if len(words) == maxWords {
			break
		}
	}

	// All stop words: fall back to whatever was there
	if len(words) == 0 && len(fields) > 0 {
		words = fields[:min(len(fields), maxWords)]
	}
	if len(words) == 0 {
		return fallback
	}
	return strings.Join(words, "-")
}

// Generate returns a codename for text that is not in existing. On collision a
// short random suffix is appended until the result is unique.
func Generate(text string, existing map[string]struct{}) string {
	base := Slug(text)
	if _, taken := existing[base]; !taken {
		return base
	}

	for {
		candidate := base + "-" + suffix()
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// suffix takes the tail of an xid, which holds its counter and random bytes.
func suffix() string {
	id := xid.New().String()
	return id[len(id)-suffixLen:]
}
