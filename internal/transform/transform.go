// Package transform applies one of four named, stateless transformations to
// a supplied list of transaction-like records. It never touches the store;
// it operates only on the payload it is given.
package transform

import (
	"errors"
	"fmt"
)

// Kind is a closed set of transformation names.
type Kind string

const (
	Summarize  Kind = "summarize"
	Categorize Kind = "categorize"
	Normalize  Kind = "normalize"
	Aggregate  Kind = "aggregate"
)

// ParseKind validates a transformation name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Summarize, Categorize, Normalize, Aggregate:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Payload validation errors, mapped to 400 at the HTTP boundary.
var (
	ErrUnknownKind         = errors.New("unknown transformation type")
	ErrMissingTransactions = errors.New("payload has no transactions field")
	ErrNotSequence         = errors.New("transactions field is not a list")
)

// Record is one transaction-like input with at least amount and
// type/category keys.
type Record = map[string]interface{}

// Apply dispatches data to the transformation named by kind.
func Apply(kind Kind, data map[string]interface{}) (map[string]interface{}, error) {
	records, err := extractRecords(data)
	if err != nil {
		return nil, err
	}

	switch kind {
	case Summarize:
		return summarize(records), nil
	case Categorize:
		return categorize(records), nil
	case Normalize:
		return normalize(records), nil
	case Aggregate:
		return aggregate(records), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func extractRecords(data map[string]interface{}) ([]Record, error) {
	raw, ok := data["transactions"]
	if !ok {
		return nil, ErrMissingTransactions
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, ErrNotSequence
	}
	records := make([]Record, 0, len(list))
	for _, item := range list {
		if r, ok := item.(map[string]interface{}); ok {
			records = append(records, r)
		} else {
			records = append(records, Record{})
		}
	}
	return records, nil
}

// amountOf reads a record's amount, tolerating absent or non-numeric values
// as zero the way the original payloads do.
func amountOf(r Record) float64 {
	switch v := r["amount"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func stringField(r Record, key, fallback string) string {
	if s, ok := r[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func summarize(records []Record) map[string]interface{} {
	result := map[string]interface{}{
		"count":   len(records),
		"total":   0.0,
		"average": 0.0,
		"min":     0.0,
		"max":     0.0,
	}
	if len(records) == 0 {
		return result
	}

	var total float64
	min := amountOf(records[0])
	max := min
	for _, r := range records {
		a := amountOf(r)
		total += a
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	result["total"] = total
	result["average"] = total / float64(len(records))
	result["min"] = min
	result["max"] = max
	return result
}

func categorize(records []Record) map[string]interface{} {
	type bucket struct {
		Count int     `json:"count"`
		Total float64 `json:"total"`
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		cat := stringField(r, "category", "uncategorized")
		b, ok := buckets[cat]
		if !ok {
			b = &bucket{}
			buckets[cat] = b
		}
		b.Count++
		b.Total += amountOf(r)
	}

	categories := make(map[string]interface{}, len(buckets))
	for cat, b := range buckets {
		categories[cat] = map[string]interface{}{
			"count": b.Count,
			"total": b.Total,
		}
	}
	return map[string]interface{}{"categories": categories}
}

func normalize(records []Record) map[string]interface{} {
	if len(records) == 0 {
		return map[string]interface{}{
			"original_range":          map[string]interface{}{"min": 0.0, "max": 0.0},
			"normalized_transactions": []interface{}{},
		}
	}

	min := amountOf(records[0])
	max := min
	for _, r := range records {
		a := amountOf(r)
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}

	out := make([]interface{}, 0, len(records))
	for _, r := range records {
		norm := 0.0
		// a constant set has no spread; define every value as 0 rather than
		// dividing by zero
		if max != min {
			norm = (amountOf(r) - min) / (max - min)
		}
		copied := make(Record, len(r)+1)
		for k, v := range r {
			copied[k] = v
		}
		copied["normalized_amount"] = norm
		out = append(out, copied)
	}

	return map[string]interface{}{
		"original_range":          map[string]interface{}{"min": min, "max": max},
		"normalized_transactions": out,
	}
}

func aggregate(records []Record) map[string]interface{} {
	totals := make(map[string]interface{})
	for _, r := range records {
		typ := stringField(r, "type", "expense")
		prev, _ := totals[typ].(float64)
		totals[typ] = prev + amountOf(r)
	}
	return totals
}
