package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cep-api/pkg/util/numberutils"
)

// NumericString holds a number that providers send either as a JSON string or a JSON number.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric value expected, got %s", data)
	}
	*n = NumericString(num.String())
	return nil
}

// Float64 parses the value, reporting false when it is empty or not a finite number.
func (n NumericString) Float64() (float64, bool) {
	if n == "" {
		return 0, false
	}
	return numberutils.ToFloat64(string(n))
}

// FlexibleBool accepts true, false, "true", "false" and null.
type FlexibleBool bool

func (b *FlexibleBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = false
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = FlexibleBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("boolean value expected, got %s", data)
	}
	*b = FlexibleBool(v)
	return nil
}
