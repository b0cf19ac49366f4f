// Package joshexport defines the row contract a physical exporter
// (CSV/NetCDF/GeoTIFF — out of scope here) would implement: a flat
// string-keyed row augmented with step/replicate, JSON-line encode/decode
// via gjson/sjson, and natural-order column sorting for deterministic
// output (spec §6's export facade).
package joshexport

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Row is one exported entity snapshot: every attribute rendered to its
// string form, ready to hand to a physical writer.
type Row map[string]string

// stepKey and replicateKey are the two fields every encoded row carries
// alongside its attributes, matching the driver's per-step, per-replicate
// snapshot model.
const (
	stepKey      = "step"
	replicateKey = "replicate"
)

// Writer is the contract a physical exporter (CSV, NetCDF, GeoTIFF, ...)
// implements. This package supplies the row shape and encoding; it does
// not implement Writer itself.
type Writer interface {
	WriteRow(row Row, step, replicate int64) error
	Close() error
}

// EncodeRow renders row plus its step/replicate into one JSON line, letting
// a row be shipped or persisted without a schema.
func EncodeRow(row Row, step, replicate int64) (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, stepKey, step)
	if err != nil {
		return "", fmt.Errorf("joshexport: encoding step: %w", err)
	}
	doc, err = sjson.Set(doc, replicateKey, replicate)
	if err != nil {
		return "", fmt.Errorf("joshexport: encoding replicate: %w", err)
	}
	for _, name := range SortedColumns(columnNames(row)) {
		doc, err = sjson.Set(doc, name, row[name])
		if err != nil {
			return "", fmt.Errorf("joshexport: encoding column %q: %w", name, err)
		}
	}
	return doc, nil
}

// DecodeRow parses one JSON line produced by EncodeRow back into a Row plus
// its step/replicate.
func DecodeRow(line string) (Row, int64, int64, error) {
	if !gjson.Valid(line) {
		return nil, 0, 0, fmt.Errorf("joshexport: invalid JSON line")
	}
	parsed := gjson.Parse(line)
	step := parsed.Get(stepKey).Int()
	replicate := parsed.Get(replicateKey).Int()

	row := make(Row)
	parsed.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == stepKey || name == replicateKey {
			return true
		}
		row[name] = value.String()
		return true
	})
	return row, step, replicate, nil
}

func columnNames(row Row) []string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	return names
}

// SortedColumns orders names in natural (numeric-aware) order, so "attr2"
// sorts before "attr10" the way a human scanning a CSV header expects.
func SortedColumns(names []string) []string {
	sorted := append([]string(nil), names...)
	sort.Slice(sorted, func(i, j int) bool {
		return natural.Less(sorted[i], sorted[j])
	})
	return sorted
}
