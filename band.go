package xlpanel

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Band is the highlight class of a cell derived from its numeric value.
type Band int

const (
	BandC Band = iota // no highlight
	BandB             // 500 < value <= 1000
	BandA             // value > 1000
)

// Band thresholds.
const (
	BandAThreshold = 1000.0
	BandBThreshold = 500.0
)

// Fill colors (RGB hex, no leading '#') used for highlighted bands and the header row.
const (
	ColorBandA  = "FFCCCC" // light red
	ColorBandB  = "FFFFCC" // light yellow
	ColorHeader = "F2F2F2" // light gray
)

// String returns "A", "B" or "C".
func (b Band) String() string {
	switch b {
	case BandA:
		return "A"
	case BandB:
		return "B"
	default:
		return "C"
	}
}

// Color returns the fill color for the band, or "" when the band is not highlighted.
func (b Band) Color() string {
	switch b {
	case BandA:
		return ColorBandA
	case BandB:
		return ColorBandB
	default:
		return ""
	}
}

// CSSColor returns Color prefixed with '#', or "" for BandC.
func (b Band) CSSColor() string {
	if c := b.Color(); c != "" {
		return "#" + c
	}
	return ""
}

// StyleLookup maps a raw cell value to its band.
type StyleLookup func(raw any) Band

// Classify parses raw as a number and classifies it. Unparseable values are BandC.
func Classify(raw any) Band {
	v, ok := ParseNumber(raw)
	if !ok {
		return BandC
	}
	return ClassifyNumber(v)
}

// ClassifyNumber classifies an already-numeric value. NaN is BandC.
func ClassifyNumber(v float64) Band {
	switch {
	case v > BandAThreshold:
		return BandA
	case v > BandBThreshold:
		return BandB
	default:
		return BandC
	}
}

// ParseNumber converts a raw cell value to float64.
// Strings are read the way a browser's parseFloat reads them: leading blanks are
// skipped and the longest decimal prefix is used, so "1500 units" is 1500.
// Hex literals and "Inf" are not numbers; "Infinity" is. NaN is never a number.
func ParseNumber(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case nil:
		return 0, false
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int8:
		v = float64(n)
	case int16:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint:
		v = float64(n)
	case uint8:
		v = float64(n)
	case uint16:
		v = float64(n)
	case uint32:
		v = float64(n)
	case uint64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, ok := parseDecimalPrefix(n)
		if !ok {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseDecimalPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Overflow still yields ±Inf, matching parseFloat("1e999").
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
