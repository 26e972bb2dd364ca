// Package filterform holds the transient search inputs of a list page and
// turns them into typed criteria for the listing controller.
package filterform

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"helpdesk/internal/shared/errors"
)

type Kind int

const (
	KindText Kind = iota
	KindEnum
	KindInt
	KindDate
	KindBool
)

const dateLayout = "2006-01-02"

// Field declares one search input. Name is the wire key of the criteria.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Options []string
}

// Target receives the criteria built by a search.
type Target[F any] interface {
	ApplyFilterAt(ctx context.Context, criteria F, page int) error
	Clear()
}

type Form[F any] struct {
	target Target[F]
	fields []Field
	values map[string]string
}

func New[F any](target Target[F], fields ...Field) *Form[F] {
	return &Form[F]{
		target: target,
		fields: fields,
		values: make(map[string]string, len(fields)),
	}
}

func (f *Form[F]) Fields() []Field {
	return f.fields
}

func (f *Form[F]) field(name string) (Field, bool) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Set stores the raw input of a field. Enum values must be one of the
// declared options; numbers, dates and booleans must parse. An empty value
// leaves the field unset.
func (f *Form[F]) Set(name, value string) error {
	fd, ok := f.field(name)
	if !ok {
		return errors.NewValidationError(fmt.Sprintf("unknown filter field %q", name))
	}

	value = strings.TrimSpace(value)
	if value != "" {
		if _, err := parse(fd, value); err != nil {
			appErr := errors.NewValidationError(err.Error())
			appErr.Fields = []errors.FieldError{{Field: fd.Name, Message: err.Error()}}
			return appErr
		}
	}

	f.values[name] = value
	return nil
}

func (f *Form[F]) Value(name string) string {
	return f.values[name]
}

func parse(fd Field, value string) (any, error) {
	switch fd.Kind {
	case KindEnum:
		if !slices.Contains(fd.Options, value) {
			return nil, fmt.Errorf("%s must be one of [%s]", fd.Name, strings.Join(fd.Options, " "))
		}
		return value, nil
	case KindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", fd.Name)
		}
		return n, nil
	case KindDate:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return nil, fmt.Errorf("%s must be a date like %s", fd.Name, dateLayout)
		}
		return value, nil
	case KindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", fd.Name)
		}
		return b, nil
	default:
		return value, nil
	}
}

// Criteria builds the typed criteria from the non-empty fields. An all-empty
// form yields the zero criteria.
func (f *Form[F]) Criteria() (F, error) {
	var out F

	set := make(map[string]any, len(f.values))
	for _, fd := range f.fields {
		raw := f.values[fd.Name]
		if raw == "" {
			continue
		}
		v, err := parse(fd, raw)
		if err != nil {
			return out, errors.NewValidationError(err.Error())
		}
		set[fd.Name] = v
	}

	data, err := json.Marshal(set)
	if err != nil {
		return out, fmt.Errorf("failed to encode criteria: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to build criteria: %w", err)
	}
	return out, nil
}

// SearchPage applies the current inputs as the list filter and shows the
// given page of matches.
func (f *Form[F]) SearchPage(ctx context.Context, page int) error {
	criteria, err := f.Criteria()
	if err != nil {
		return err
	}
	return f.target.ApplyFilterAt(ctx, criteria, page)
}

// Clear resets every input and clears the list.
func (f *Form[F]) Clear() {
	clear(f.values)
	f.target.Clear()
}
