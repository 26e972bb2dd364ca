package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"helpdesk/internal/shared/errors"
)

// Assign merges "key=value" pairs into the form pointed to by form. Keys are
// the wire names of the form fields. Values are converted to the field type;
// an empty value clears optional fields.
func Assign(form any, pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	values, err := ParsePairs(pairs)
	if err != nil {
		return err
	}

	input := make(map[string]any, len(values))
	for k, v := range values {
		if v == "" {
			input[k] = nil
			continue
		}
		input[k] = v
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Metadata:         &md,
		Result:           form,
	})
	if err != nil {
		return fmt.Errorf("failed to build form decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return errors.NewValidationError("Valor inválido", err.Error())
	}
	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return errors.NewValidationError("Campo desconhecido", strings.Join(md.Unused, ", "))
	}
	return nil
}

// ParsePairs splits "key=value" arguments. The value may itself contain "=".
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors.NewValidationError("Use chave=valor", p)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
