package fakeapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// record is one stored entity in its wire shape.
type record map[string]any

func toRecord(v any) (record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return r, nil
}

func (r record) id() int64 {
	return toInt64(r["id"])
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		id, _ := strconv.ParseInt(n, 10, 64)
		return id
	default:
		return 0
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

// collection keeps records in insertion order.
type collection struct {
	records []record
}

func (c *collection) find(id int64) (int, record) {
	for i, r := range c.records {
		if r.id() == id {
			return i, r
		}
	}
	return -1, nil
}

func (c *collection) add(r record) {
	c.records = append(c.records, r)
}

// merge applies changed keys; a null clears the key.
func (c *collection) merge(id int64, changes record) (record, bool) {
	_, r := c.find(id)
	if r == nil {
		return nil, false
	}
	for k, v := range changes {
		if k == "id" {
			continue
		}
		if v == nil {
			delete(r, k)
			continue
		}
		r[k] = v
	}
	return r, true
}

func (c *collection) remove(id int64) bool {
	i, _ := c.find(id)
	if i < 0 {
		return false
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return true
}

// filter returns the records matching every criterion.
func (c *collection) filter(criteria map[string]string) []record {
	out := make([]record, 0, len(c.records))
	for _, r := range c.records {
		if matchesAll(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r record, criteria map[string]string) bool {
	for key, want := range criteria {
		if !matches(r, key, want) {
			return false
		}
	}
	return true
}

func matches(r record, key, want string) bool {
	switch key {
	case "search":
		needle := strings.ToLower(want)
		for _, v := range r {
			if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	case "dataInicio":
		return datePart(r) >= want
	case "dataFim":
		return datePart(r) != "" && datePart(r) <= want
	}

	if v, ok := r[key]; ok {
		return strings.EqualFold(toString(v), want)
	}
	// Address criteria match the embedded addresses of a client.
	if nested, ok := r["enderecos"].([]any); ok {
		for _, item := range nested {
			if m, ok := item.(map[string]any); ok && strings.EqualFold(toString(m[key]), want) {
				return true
			}
		}
	}
	// Name criteria match the embedded client, e.g. clienteNome on contracts.
	if strings.HasSuffix(key, "Nome") {
		if m, ok := r[strings.TrimSuffix(key, "Nome")].(map[string]any); ok {
			return strings.Contains(strings.ToLower(toString(m["nome"])), strings.ToLower(want))
		}
	}
	return false
}

func datePart(r record) string {
	for _, key := range []string{"createdAt", "dataAbertura", "dataInicio"} {
		if s := toString(r[key]); len(s) >= 10 {
			return s[:10]
		}
	}
	return ""
}
