package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoInput is returned by Decode when the input holds no payload at all.
// A payload with an empty coupon list is not an error.
var ErrNoInput = errors.New("no coupon payload")

// Decode reads a coupon payload and returns its records in payload order.
func Decode(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoInput
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding coupons: %w", err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding coupons: trailing JSON content")
	}

	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("validating coupons: %w", err)
	}
	return recordsFrom(doc), nil
}

// LoadFile decodes the coupon payload stored at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func recordsFrom(doc any) []Record {
	switch v := doc.(type) {
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, Record(obj))
			}
		}
		return out
	case map[string]any:
		if coupons, ok := v["coupons"]; ok {
			return recordsFrom(coupons)
		}
		return recordsFrom(v["data"])
	default:
		return []Record{}
	}
}
