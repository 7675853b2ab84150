package order

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// NumberPrefix is the fixed storefront prefix of every order number
	NumberPrefix = "FLX"
	// MaxSequence is the largest daily sequence a four digit counter can hold
	MaxSequence = 9999

	numberDateLayout = "060102"
	numberLength     = len(NumberPrefix) + 1 + len(numberDateLayout) + 1 + 4
)

// OrderNumber is the human-readable order identifier FLX-YYMMDD-NNNN.
// The date part is the UTC allocation date; the sequence is unique within that date.
type OrderNumber struct {
	date     string
	sequence int
}

// DatePart returns the YYMMDD encoding of t in UTC
func DatePart(t time.Time) string {
	return t.UTC().Format(numberDateLayout)
}

// DayPrefix returns the order number prefix shared by all orders allocated on t's UTC date,
// e.g. "FLX-240615-"
func DayPrefix(t time.Time) string {
	return NumberPrefix + "-" + DatePart(t) + "-"
}

// NewOrderNumber builds the order number for day with the given sequence
func NewOrderNumber(day time.Time, sequence int) (OrderNumber, error) {
	if sequence < 1 {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("sequence %d is below 1", sequence))
	}
	if sequence > MaxSequence {
		return OrderNumber{}, ErrSequenceOverflow.Wrap(fmt.Errorf("sequence %d exceeds %d for %s", sequence, MaxSequence, DatePart(day)))
	}
	return OrderNumber{date: DatePart(day), sequence: sequence}, nil
}

// ParseOrderNumber parses a canonical order number string
func ParseOrderNumber(s string) (OrderNumber, error) {
	if len(s) != numberLength {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q has length %d, want %d", s, len(s), numberLength))
	}

	prefix := NumberPrefix + "-"
	if s[:len(prefix)] != prefix {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q does not start with %s", s, prefix))
	}

	datePart := s[len(prefix) : len(prefix)+len(numberDateLayout)]
	if !isDigits(datePart) {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q has a non-numeric date part", s))
	}
	if _, err := time.Parse(numberDateLayout, datePart); err != nil {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q has an invalid date part: %w", s, err))
	}

	sepIdx := len(prefix) + len(numberDateLayout)
	if s[sepIdx] != '-' {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q is missing the sequence separator", s))
	}

	seqPart := s[sepIdx+1:]
	if !isDigits(seqPart) {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q has a non-numeric sequence", s))
	}
	seq, err := strconv.Atoi(seqPart)
	if err != nil || seq < 1 {
		return OrderNumber{}, ErrInvalidOrderNumber.Wrap(fmt.Errorf("%q has sequence %s", s, seqPart))
	}

	return OrderNumber{date: datePart, sequence: seq}, nil
}

// String returns the canonical form
func (n OrderNumber) String() string {
	if n.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, n.date, n.sequence)
}

// DatePart returns the YYMMDD part
func (n OrderNumber) DatePart() string {
	return n.date
}

// Sequence returns the daily sequence
func (n OrderNumber) Sequence() int {
	return n.sequence
}

// Prefix returns the day prefix this number belongs to
func (n OrderNumber) Prefix() string {
	return NumberPrefix + "-" + n.date + "-"
}

// IsZero reports whether n is the zero value
func (n OrderNumber) IsZero() bool {
	return n.sequence == 0
}

// Next returns the number following n on the same date.
// It fails with ErrSequenceOverflow rather than wrapping past MaxSequence.
func (n OrderNumber) Next() (OrderNumber, error) {
	if n.sequence >= MaxSequence {
		return OrderNumber{}, ErrSequenceOverflow.Wrap(fmt.Errorf("%s is the last number for %s", n, n.date))
	}
	return OrderNumber{date: n.date, sequence: n.sequence + 1}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
