package codec

import (
	"errors"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	datagate "github.com/reoring/datagate"
)

// Doubles accept JSON numbers, numeric strings, and the three non-finite
// literals JSON itself cannot spell.
const (
	litInfinity    = "Infinity"
	litNegInfinity = "-Infinity"
	litNaN         = "NaN"
)

func decodeDouble(raw any) (datagate.Value, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, ok := parseDouble(string(v))
		if !ok {
			return nil, false
		}
		return datagate.Double(f), true
	case float64:
		return datagate.Double(v), true
	case string:
		switch v {
		case litInfinity:
			return datagate.Double(math.Inf(1)), true
		case litNegInfinity:
			return datagate.Double(math.Inf(-1)), true
		case litNaN:
			return datagate.Double(math.NaN()), true
		}
		f, ok := parseDouble(v)
		if !ok {
			return nil, false
		}
		return datagate.Double(f), true
	}
	return nil, false
}

func encodeDouble(v datagate.Value) any {
	f := float64(v.(datagate.Double))
	if s, nonFinite := nonFiniteLiteral(f); nonFinite {
		return s
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

func doubleText(f float64) string {
	if s, nonFinite := nonFiniteLiteral(f); nonFinite {
		return s
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func nonFiniteLiteral(f float64) (string, bool) {
	switch {
	case math.IsInf(f, 1):
		return litInfinity, true
	case math.IsInf(f, -1):
		return litNegInfinity, true
	case math.IsNaN(f):
		return litNaN, true
	}
	return "", false
}

// parseDouble saturates out-of-range magnitudes to ±Inf, matching what a
// lossy float64 pipeline would have produced anyway.
func parseDouble(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return f, true
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) && ne.Err == strconv.ErrRange {
		return f, true
	}
	return 0, false
}
