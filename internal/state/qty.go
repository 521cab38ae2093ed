package state

import (
	"math"
	"strconv"
	"strings"
)

// MaxCartQty caps a single cart line
const MaxCartQty = math.MaxInt32

// ClampQty forces qty into [1, MaxCartQty]
func ClampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > MaxCartQty {
		return MaxCartQty
	}
	return qty
}

// ParseQty normalizes untrusted quantity input: non-numeric, zero or NaN
// input yields 1, fractions are floored and the result is clamped to at
// least 1
func ParseQty(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || f == 0 {
		return 1
	}

	f = math.Floor(f)
	if f < 1 {
		return 1
	}
	if f > MaxCartQty {
		return MaxCartQty
	}
	return int(f)
}
