package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Record is a raw trail record as supplied by a data source.
// Keys: id, name, park, status, condition, length_miles, elevation_gain_ft,
// last_updated and the optional notes.
type Record map[string]any

// requiredKeys must be present and non-null in every Record.
var requiredKeys = []string{
	"id", "name", "park", "status", "condition",
	"length_miles", "elevation_gain_ft", "last_updated",
}

// timestampLayouts are tried in order by ParseTimestamp.
// Layouts without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// recordFields is the typed intermediate form of a Record. Enumerations stay
// strings here so unknown values can be reported with a clear message.
type recordFields struct {
	ID              string    `mapstructure:"id"`
	Name            string    `mapstructure:"name"`
	Park            string    `mapstructure:"park"`
	Status          string    `mapstructure:"status"`
	Condition       string    `mapstructure:"condition"`
	LengthMiles     float64   `mapstructure:"length_miles"`
	ElevationGainFt int       `mapstructure:"elevation_gain_ft"`
	LastUpdated     time.Time `mapstructure:"last_updated"`
	Notes           string    `mapstructure:"notes"`
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	numberType = reflect.TypeOf(json.Number(""))
)

// DecodeTrail converts a raw Record into a Trail.
// Every key except notes is required. Numbers may be any Go numeric type or a
// json.Number; last_updated may be a time.Time or an ISO-8601 string.
// Any failure returns an error wrapping ErrInvalidRecord.
func DecodeTrail(rec Record) (Trail, error) {
	for _, k := range requiredKeys {
		if v, ok := rec[k]; !ok || v == nil {
			return Trail{}, fmt.Errorf("%w: missing key %q", ErrInvalidRecord, k)
		}
	}

	var f recordFields
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(timestampHook, integerHook),
		Result:     &f,
	})
	if err != nil {
		return Trail{}, fmt.Errorf("domain.DecodeTrail: %w", err)
	}
	if err := dec.Decode(map[string]any(rec)); err != nil {
		return Trail{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if f.ID == "" {
		return Trail{}, fmt.Errorf("%w: id must not be empty", ErrInvalidRecord)
	}
	status := TrailStatus(f.Status)
	if !status.Valid() {
		return Trail{}, fmt.Errorf("%w: trail %s: unknown status %q", ErrInvalidRecord, f.ID, f.Status)
	}
	condition := TrailCondition(f.Condition)
	if !condition.Valid() {
		return Trail{}, fmt.Errorf("%w: trail %s: unknown condition %q", ErrInvalidRecord, f.ID, f.Condition)
	}
	if math.IsNaN(f.LengthMiles) || f.LengthMiles < 0 {
		return Trail{}, fmt.Errorf("%w: trail %s: length_miles must be >= 0", ErrInvalidRecord, f.ID)
	}
	if f.ElevationGainFt < 0 {
		return Trail{}, fmt.Errorf("%w: trail %s: elevation_gain_ft must be >= 0", ErrInvalidRecord, f.ID)
	}

	return Trail{
		ID:              f.ID,
		Name:            f.Name,
		Park:            f.Park,
		Status:          status,
		Condition:       condition,
		LengthMiles:     f.LengthMiles,
		ElevationGainFt: f.ElevationGainFt,
		LastUpdated:     f.LastUpdated.UTC(),
		Notes:           f.Notes,
	}, nil
}

// Record encodes t back into the raw record shape accepted by DecodeTrail.
func (t Trail) Record() Record {
	return Record{
		"id":                t.ID,
		"name":              t.Name,
		"park":              t.Park,
		"status":            string(t.Status),
		"condition":         string(t.Condition),
		"length_miles":      t.LengthMiles,
		"elevation_gain_ft": t.ElevationGainFt,
		"last_updated":      FormatTimestamp(t.LastUpdated),
		"notes":             t.Notes,
	}
}

// ParseTimestamp parses an ISO-8601 timestamp and returns it in UTC.
// Timestamps without a zone offset are taken to be UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders ts in the canonical form written by Trail.Record.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// timestampHook lets mapstructure decode ISO-8601 strings into time.Time.
func timestampHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseTimestamp(reflect.ValueOf(data).String())
}

// integerHook accepts integral floats such as 2200.0, plain or as json.Number,
// for integer fields. Fractional values are rejected rather than truncated.
func integerHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	var f float64
	switch {
	case from == numberType:
		n := data.(json.Number)
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		v, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", n.String())
		}
		f = v
	case from.Kind() == reflect.Float32 || from.Kind() == reflect.Float64:
		f = reflect.ValueOf(data).Float()
	default:
		return data, nil
	}

	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}
