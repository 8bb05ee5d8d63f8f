package entries

import "errors"

var (
	// ErrEmptyBlock is returned when appending a block with no content.
	ErrEmptyBlock = errors.New("entry block is empty")

	// ErrReservedLine is returned when entry text contains a line that the
	// parser would read as structure (a heading, quote, deadline or goal link).
	ErrReservedLine = errors.New("text contains a reserved line")
)
