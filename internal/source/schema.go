package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// payloadSchema accepts a bare array of coupon objects, an object carrying a
// "coupons" array, or an object whose "data" field holds either of those.
func payloadSchema() map[string]any {
	couponList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "object"},
	}
	envelope := map[string]any{
		"type":     "object",
		"required": []string{"coupons"},
		"properties": map[string]any{
			"coupons": couponList,
		},
	}
	return map[string]any{
		"anyOf": []any{
			couponList,
			envelope,
			map[string]any{
				"type":     "object",
				"required": []string{"data"},
				"properties": map[string]any{
					"data": map[string]any{"anyOf": []any{couponList, envelope}},
				},
			},
		},
	}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(payloadSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("coupons.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("coupons.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Validate checks a decoded payload against the coupon payload schema.
func Validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}
