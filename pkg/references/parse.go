package references

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agentstation/refselect/pkg/errors"
)

var (
	referenceFields = []string{"uri", "labels", "list_id"}
	labelFields     = []string{"id", "value", "language_id", "valuetype_id", "list_item_id"}
)

// ParseValue decodes a stored reference value. null, an empty document and
// an empty array all decode to a nil Value. Unknown or missing fields are
// reported as validation errors.
func ParseValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	value := make(Value, 0, len(raw))
	for i, fields := range raw {
		// An explicitly empty labels array counts as missing.
		if lbl, ok := fields["labels"]; ok && isEmptyArray(lbl) {
			delete(fields, "labels")
		}
		if err := checkFields(fields, referenceFields); err != nil {
			return nil, withIndex(err, i)
		}

		var rawLabels []map[string]json.RawMessage
		if err := json.Unmarshal(fields["labels"], &rawLabels); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		for _, lf := range rawLabels {
			if err := checkFields(lf, labelFields); err != nil {
				return nil, withIndex(err, i)
			}
		}

		var ref Reference
		if err := remarshal(fields, &ref); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		value = append(value, ref)
	}

	if len(value) == 0 {
		return nil, nil
	}
	return value, nil
}

func checkFields(fields map[string]json.RawMessage, required []string) error {
	var unexpected []string
	for key := range fields {
		if !slices.Contains(required, key) {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return errors.NewValidationError("", unexpected, "Unexpected value: "+quoteAll(unexpected))
	}

	var missing []string
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationError("", missing, "Missing required value(s): "+quoteAll(missing))
	}
	return nil
}

func withIndex(err error, i int) error {
	if ve, ok := err.(*errors.ValidationError); ok {
		ve.Field = fmt.Sprintf("[%d]", i)
	}
	return err
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func isEmptyArray(raw json.RawMessage) bool {
	return bytes.Equal(bytes.Join(bytes.Fields(raw), nil), []byte("[]"))
}

func quoteAll(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}
	return strings.Join(quoted, " and ")
}
