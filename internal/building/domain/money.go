package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Money formats a dollar amount compactly: $1.2M, $350K or $900.
func Money(n float64) string {
	switch {
	case n >= 1e6:
		return fmt.Sprintf("$%.1fM", math.Round(n/1e5)/10)
	case n >= 1e3:
		return fmt.Sprintf("$%dK", int64(math.Round(n/1e3)))
	default:
		return "$" + strconv.FormatFloat(n, 'f', -1, 64)
	}
}
