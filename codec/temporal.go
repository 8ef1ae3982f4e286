package codec

import (
	"time"

	datagate "github.com/reoring/datagate"
)

// One canonical textual layout per temporal type. Malformed text decodes to
// no value; the encoders always emit the same layout, so client round-trips
// are byte-stable.
const (
	LayoutFixedTimestamp    = "2006-01-02T15:04:05.000Z07:00"
	LayoutFloatingTimestamp = "2006-01-02T15:04:05.000"
	LayoutDate              = "2006-01-02"
	LayoutTimeOfDay         = "15:04:05.000"
)

var fixedTimestampCodec = Codec{
	t: datagate.TypeFixedTimestamp,
	decodeClient: decodeTemporal(LayoutFixedTimestamp, func(t time.Time) datagate.Value {
		return datagate.FixedTimestamp{Time: t}
	}),
	encodeClient: encodeFixedTimestamp,
	encodeWire:   encodeFixedTimestamp,
	text: func(v datagate.Value) string {
		return v.(datagate.FixedTimestamp).Time.Format(LayoutFixedTimestamp)
	},
}

var floatingTimestampCodec = Codec{
	t: datagate.TypeFloatingTimestamp,
	decodeClient: decodeTemporal(LayoutFloatingTimestamp, func(t time.Time) datagate.Value {
		return datagate.FloatingTimestamp{Time: t}
	}),
	encodeClient: encodeFloatingTimestamp,
	encodeWire:   encodeFloatingTimestamp,
	text: func(v datagate.Value) string {
		return v.(datagate.FloatingTimestamp).Time.Format(LayoutFloatingTimestamp)
	},
}

var dateCodec = Codec{
	t: datagate.TypeDate,
	decodeClient: decodeTemporal(LayoutDate, func(t time.Time) datagate.Value {
		return datagate.Date{Time: t}
	}),
	encodeClient: encodeDate,
	encodeWire:   encodeDate,
	text: func(v datagate.Value) string {
		return v.(datagate.Date).Time.Format(LayoutDate)
	},
}

var timeOfDayCodec = Codec{
	t: datagate.TypeTimeOfDay,
	decodeClient: decodeTemporal(LayoutTimeOfDay, func(t time.Time) datagate.Value {
		return datagate.TimeOfDay{Time: t}
	}),
	encodeClient: encodeTimeOfDay,
	encodeWire:   encodeTimeOfDay,
	text: func(v datagate.Value) string {
		return v.(datagate.TimeOfDay).Time.Format(LayoutTimeOfDay)
	},
}

func decodeTemporal(layout string, mk func(time.Time) datagate.Value) func(any) (datagate.Value, bool) {
	return func(raw any) (datagate.Value, bool) {
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		t, err := time.Parse(layout, s)
		if err != nil {
			return nil, false
		}
		return mk(t), true
	}
}

func encodeFixedTimestamp(v datagate.Value) any {
	return v.(datagate.FixedTimestamp).Time.Format(LayoutFixedTimestamp)
}

func encodeFloatingTimestamp(v datagate.Value) any {
	return v.(datagate.FloatingTimestamp).Time.Format(LayoutFloatingTimestamp)
}

func encodeDate(v datagate.Value) any {
	return v.(datagate.Date).Time.Format(LayoutDate)
}

func encodeTimeOfDay(v datagate.Value) any {
	return v.(datagate.TimeOfDay).Time.Format(LayoutTimeOfDay)
}
