package entries

import (
	"regexp"
	"strings"
	"time"
)

var (
	// Headings
	goalHeadingRe = regexp.MustCompile(`^##\s+(\d{1,2}:\d{2})\s+-\s+(.+?)\s*$`)
	timeHeadingRe = regexp.MustCompile(`^##\s+(\d{1,2}:\d{2})\s*$`)

	// Body lines
	quoteRe    = regexp.MustCompile(`^\s*>[ ]?(.*)$`)
	deadlineRe = regexp.MustCompile(`^Deadline:\s*(\d{4}-\d{2}-\d{2})\s*$`)
	goalLinkRe = regexp.MustCompile(`^Goal:\s*(\S+)\s*$`)
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineBody
	lineGoalHeading
	lineTimeHeading
	lineQuote
	lineDeadline
	lineGoalLink
)

// line is one tagged line of an entry file. value holds the captured field:
// the quote text, the deadline date, or the linked codename.
type line struct {
	kind     lineKind
	raw      string
	time     string
	codename string
	value    string
}

// block is a heading line plus the lines up to the next heading.
type block struct {
	heading line
	body    []line
}

// scanLines tags every line of content.
func scanLines(content string) []line {
	raw := splitLines(content)
	lines := make([]line, 0, len(raw))

	for _, text := range raw {
		trimmed := strings.TrimSpace(text)
		l := line{kind: lineBody, raw: text}

		switch {
		case trimmed == "":
			l.kind = lineBlank
		case goalHeadingRe.MatchString(trimmed):
			match := goalHeadingRe.FindStringSubmatch(trimmed)
			l.kind = lineGoalHeading
			l.time = match[1]
			l.codename = match[2]
		case timeHeadingRe.MatchString(trimmed):
			l.kind = lineTimeHeading
			l.time = timeHeadingRe.FindStringSubmatch(trimmed)[1]
		case quoteRe.MatchString(text):
			l.kind = lineQuote
			l.value = quoteRe.FindStringSubmatch(text)[1]
		case isDeadline(trimmed):
			l.kind = lineDeadline
			l.value = deadlineRe.FindStringSubmatch(trimmed)[1]
		case goalLinkRe.MatchString(trimmed):
			l.kind = lineGoalLink
			l.value = goalLinkRe.FindStringSubmatch(trimmed)[1]
		}

		lines = append(lines, l)
	}

	return lines
}

// isDeadline reports whether trimmed is a deadline line carrying a real
// calendar date. "Deadline: 2025-13-45" stays body text.
func isDeadline(trimmed string) bool {
	match := deadlineRe.FindStringSubmatch(trimmed)
	if match == nil {
		return false
	}
	_, err := time.Parse("2006-01-02", match[1])
	return err == nil
}

// splitBlocks groups lines into blocks starting at headings of the given kind.
// Lines before the first heading are returned as the preamble.
func splitBlocks(lines []line, heading lineKind) (preamble []line, blocks []block) {
	current := -1
	for _, l := range lines {
		if l.kind == heading {
			blocks = append(blocks, block{heading: l})
			current = len(blocks) - 1
			continue
		}
		if current < 0 {
			preamble = append(preamble, l)
			continue
		}
		blocks[current].body = append(blocks[current].body, l)
	}
	return preamble, blocks
}

// lastRun returns the [start, end) bounds of the last run of consecutive
// lines of kind, or -1, -1 if there is none.
func lastRun(lines []line, kind lineKind) (int, int) {
	end := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].kind == kind {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return -1, -1
	}

	start := end - 1
	for start > 0 && lines[start-1].kind == kind {
		start--
	}
	return start, end
}

// lastIndex returns the index of the last line of kind, or -1.
func lastIndex(lines []line, kind lineKind) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].kind == kind {
			return i
		}
	}
	return -1
}

// joinRaw joins the raw text of lines, skipping the indexes in skip, and trims
// the result.
func joinRaw(lines []line, skip func(i int) bool) string {
	parts := make([]string, 0, len(lines))
	for i, l := range lines {
		if skip != nil && skip(i) {
			continue
		}
		parts = append(parts, l.raw)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	// Remove the trailing empty element produced by Split when the input ends with a newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
