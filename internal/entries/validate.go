package entries

import "fmt"

// CheckGoalText rejects goal text that would not parse back as the same goal:
// headings start a new entry, quotes become the description and a deadline
// line becomes the deadline.
func CheckGoalText(text string) error {
	return checkLines(text, lineGoalHeading, lineTimeHeading, lineQuote, lineDeadline)
}

// CheckHistoryText rejects history text containing headings or a goal link
// line.
func CheckHistoryText(text string) error {
	return checkLines(text, lineGoalHeading, lineTimeHeading, lineGoalLink)
}

func checkLines(text string, reserved ...lineKind) error {
	for i, l := range scanLines(text) {
		for _, kind := range reserved {
			if l.kind == kind {
				return fmt.Errorf("%w: line %d %q", ErrReservedLine, i+1, l.raw)
			}
		}
	}
	return nil
}
