package codec

import (
	"strconv"

	datagate "github.com/reoring/datagate"
)

// Points travel as GeoJSON on both the client and wire sides; flat text is
// WKT, which is what CSV consumers expect for geometry.

func decodePoint(raw any) (datagate.Value, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	kind, ok := obj["type"].(string)
	if !ok || kind != "Point" {
		return nil, false
	}
	coords, ok := obj["coordinates"].([]any)
	if !ok || len(coords) != 2 {
		return nil, false
	}
	x, ok := coordValue(coords[0])
	if !ok {
		return nil, false
	}
	y, ok := coordValue(coords[1])
	if !ok {
		return nil, false
	}
	return datagate.Point{X: x, Y: y}, true
}

func encodePoint(v datagate.Value) any {
	p := v.(datagate.Point)
	return map[string]any{
		"type":        "Point",
		"coordinates": []any{p.X, p.Y},
	}
}

func coordValue(raw any) (float64, bool) {
	s, ok := numericText(raw)
	if !ok {
		return 0, false
	}
	return parseDouble(s)
}

func coordText(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
