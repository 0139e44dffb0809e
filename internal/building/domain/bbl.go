// Package domain holds the pure rules of the building report: identifier
// handling, classification, reductions, scoring, red flags and the timeline.
// Nothing in this package performs I/O.
package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidBBL is returned when an identifier cannot be normalized to ten
// digits.
var ErrInvalidBBL = errors.New("invalid BBL format")

// BBL is a normalized borough-block-lot identifier: 1 borough digit, 5 block
// digits and 4 lot digits.
type BBL string

// NormalizeBBL strips every non-digit, keeps the first ten digits and
// left-pads shorter values with zeros. Only empty input yields "", so input
// without any digit pads to all zeros.
func NormalizeBBL(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) >= 10 {
		return digits[:10]
	}
	return strings.Repeat("0", 10-len(digits)) + digits
}

// ParseBBL normalizes raw and rejects values that are not ten digits.
func ParseBBL(raw string) (BBL, error) {
	n := NormalizeBBL(raw)
	if len(n) != 10 {
		return "", ErrInvalidBBL
	}
	return BBL(n), nil
}

func (b BBL) String() string { return string(b) }

// Borough is the borough code digit.
func (b BBL) Borough() string { return string(b)[:1] }

// Block is the block segment without leading zeros.
func (b BBL) Block() string { return strings.TrimLeft(string(b)[1:6], "0") }

// Lot is the lot segment without leading zeros.
func (b BBL) Lot() string { return strings.TrimLeft(string(b)[6:], "0") }

// BlockNumber is the block as an integer.
func (b BBL) BlockNumber() int {
	n, _ := strconv.Atoi(string(b)[1:6])
	return n
}

// LotNumber is the lot as an integer.
func (b BBL) LotNumber() int {
	n, _ := strconv.Atoi(string(b)[6:])
	return n
}
