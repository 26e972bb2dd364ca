package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

// Criteria converts a filter struct into a flat map of wire keys. Keys whose
// value is null (unset pointer fields tagged omitempty are dropped before
// that) never appear, so an empty filter yields an empty map.
func Criteria(filter any) (map[string]any, error) {
	data, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal criteria: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	raw := map[string]any{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode criteria: %w", err)
	}

	for k, v := range raw {
		if v == nil {
			delete(raw, k)
		}
	}
	return raw, nil
}

// Values encodes a filter struct as URL query values.
func Values(filter any) (url.Values, error) {
	criteria, err := Criteria(filter)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(criteria))
	for k := range criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := criteria[k].(type) {
		case string:
			values.Set(k, v)
		case json.Number:
			values.Set(k, v.String())
		case bool:
			values.Set(k, fmt.Sprintf("%t", v))
		default:
			return nil, fmt.Errorf("criteria key %q: unsupported value type %T", k, v)
		}
	}
	return values, nil
}
