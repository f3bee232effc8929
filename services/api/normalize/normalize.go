// Package normalize turns raw table rows into a clean, time-ordered
// set of sensor readings. A row survives only if every field parses.
package normalize

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one row of the managed table as the source hands it over:
// field name to untyped value.
type RawRecord map[string]any

// Reading is a fully validated sensor sample.
type Reading struct {
	Timestamp      time.Time `json:"timestamp"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	SoilMoisture   float64   `json:"soil_moisture"`
	SoilNitrogen   float64   `json:"soil_nitrogen"`
	SoilPhosphorus float64   `json:"soil_phosphorus"`
	SoilPotassium  float64   `json:"soil_potassium"`
}

// FieldTimestamp is the raw field holding the sample time.
const FieldTimestamp = "timestamp"

// SensorFields lists the six numeric fields, in presentation order.
var SensorFields = []string{
	"temperature",
	"humidity",
	"soil_moisture",
	"soil_nitrogen",
	"soil_phosphorus",
	"soil_potassium",
}

// timeLayouts are tried in order when the timestamp arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts raw rows into Readings. Rows with any unparseable
// field are dropped whole; the survivors come back sorted ascending by
// timestamp with input order breaking ties. Malformed input never
// produces an error, only a smaller result.
func Normalize(records []RawRecord) []Reading {
	readings := make([]Reading, 0, len(records))
	for _, rec := range records {
		r, ok := parseRecord(rec)
		if !ok {
			continue
		}
		readings = append(readings, r)
	}
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	return readings
}

func parseRecord(rec RawRecord) (Reading, bool) {
	ts, ok := ParseTimestamp(rec[FieldTimestamp])
	if !ok {
		return Reading{}, false
	}

	values := make([]float64, len(SensorFields))
	for i, field := range SensorFields {
		v, ok := ParseNumber(rec[field])
		if !ok {
			return Reading{}, false
		}
		values[i] = v
	}

	return Reading{
		Timestamp:      ts,
		Temperature:    values[0],
		Humidity:       values[1],
		SoilMoisture:   values[2],
		SoilNitrogen:   values[3],
		SoilPhosphorus: values[4],
		SoilPotassium:  values[5],
	}, true
}

// ParseNumber coerces a loosely typed table value into a float64.
// Accepts numbers of any width and numeric text; rejects everything else.
func ParseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseTimestamp coerces a raw timestamp value into a point in time.
// Accepts time.Time and text in any of the known layouts.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Latest returns the newest reading of an ordered set.
func Latest(readings []Reading) (Reading, bool) {
	if len(readings) == 0 {
		return Reading{}, false
	}
	return readings[len(readings)-1], true
}
