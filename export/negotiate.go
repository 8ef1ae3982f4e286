package export

import (
	"mime"
	"strconv"
	"strings"
)

// Negotiate selects an export format from an Accept header by standard
// content negotiation against the three supported media types. Wildcards
// resolve to the preference order of Formats; an empty header means JSON.
// ok is false when nothing acceptable matches.
func Negotiate(accept string) (Format, bool) {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return FormatJSON, true
	}
	best := Format{}
	bestQ := -1.0
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if qs, ok := params["q"]; ok {
			if qv, err := strconv.ParseFloat(qs, 64); err == nil {
				q = qv
			}
		}
		if q <= 0 || q <= bestQ {
			continue
		}
		if f, ok := matchMediaType(mt); ok {
			best = f
			bestQ = q
		}
	}
	if bestQ < 0 {
		return Format{}, false
	}
	return best, true
}

func matchMediaType(mt string) (Format, bool) {
	mt = strings.ToLower(mt)
	for _, f := range Formats() {
		if mt == f.MIME {
			return f, true
		}
	}
	switch mt {
	case "*/*", "application/*":
		return FormatJSON, true
	case "text/*":
		return FormatCSV, true
	}
	return Format{}, false
}
