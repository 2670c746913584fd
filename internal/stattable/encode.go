package stattable

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinel marks a rank position that does not apply — the row was
// unqualified or the value itself is missing. Chosen to be a single
// non-numeric character so a downstream parser can never confuse it with a
// rank.
const Sentinel = "_"

// Encode serializes a ranked statistic as value|national|conference. The
// value is rendered at fixed precision; a rank of 0 means absent and is
// rendered as the sentinel.
func Encode(value float64, decimals, national, conference int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64) +
		"|" + rankString(national) +
		"|" + rankString(conference)
}

// EncodeMissing is the encoding of a statistic with no value at all.
func EncodeMissing() string {
	return Sentinel + "|" + Sentinel + "|" + Sentinel
}

func rankString(rank int) string {
	if rank <= 0 {
		return Sentinel
	}
	return strconv.Itoa(rank)
}

// Ranked is a decoded value|national|conference triple. A zero rank means
// the sentinel was present; ValuePresent is false when the value position
// held the sentinel.
type Ranked struct {
	Value        float64
	ValuePresent bool
	National     int
	Conference   int
}

// Decode parses an encoded ranked statistic. It is the inverse of Encode
// and exists for consumers that post-process the generated tables.
func Decode(s string) (Ranked, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return Ranked{}, fmt.Errorf("malformed ranked stat %q: want 3 parts, got %d", s, len(parts))
	}

	var r Ranked
	if parts[0] != Sentinel {
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return Ranked{}, fmt.Errorf("malformed ranked stat %q: %w", s, err)
		}
		r.Value, r.ValuePresent = v, true
	}

	for i, dst := range []*int{&r.National, &r.Conference} {
		part := parts[i+1]
		if part == Sentinel {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return Ranked{}, fmt.Errorf("malformed rank in %q: %q", s, part)
		}
		*dst = n
	}
	return r, nil
}
