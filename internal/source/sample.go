package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/thirddot45/sftrails/internal/domain"
)

// sampleTrails holds the San Francisco area trails used in development mode
// and to seed the Redis and Postgres backends.
//
//go:embed sample_trails.json
var sampleTrails []byte

// SampleRecords returns a fresh copy of the embedded sample trail records.
func SampleRecords() []domain.Record {
	recs, err := decodeRecordList(bytes.NewReader(sampleTrails))
	if err != nil {
		panic("source: malformed embedded sample_trails.json: " + err.Error())
	}
	return recs
}

// decodeRecordList decodes a JSON array of objects. Numbers are kept as
// json.Number so integer fields survive without float rounding.
func decodeRecordList(r io.Reader) ([]domain.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var recs []domain.Record
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode trail list: %w", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("decode trail list: %w", err)
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return recs, nil
}

// decodeRecord decodes a single JSON object.
func decodeRecord(r io.Reader) (domain.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rec domain.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode trail: %w", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("decode trail: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("decode trail: empty document")
	}
	return rec, nil
}

// expectEOF reports an error if anything other than whitespace follows the
// value dec has just decoded.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
