package expense

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal string to cents.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted; a
// third decimal digit is rounded half-up. Negative and signed values are
// rejected, zero is allowed (the store never sees anything that failed to
// parse — form validation calls this before an add or edit goes through).
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, found := strings.Cut(s, ".")
	if found && strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}

	if intPart == "" {
		intPart = "0"
	}

	// ASCII digits only; the cents math below indexes bytes.
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var cents int64

	if len(fracPart) > 0 {
		cents = int64(fracPart[0]-'0') * 10
	}

	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}

	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}

	// Guard whole*100 + cents against wrapping past math.MaxInt64.
	const maxWhole = (1<<63 - 1) / 100
	if whole > maxWhole || (whole == maxWhole && cents > (1<<63-1)%100) {
		return 0, ErrInvalidAmount
	}

	return whole*100 + cents, nil
}
