package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a float that decodes from either a JSON number or a numeric
// string. The backend formats averages with toFixed, so both shapes appear.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

// String renders the shortest decimal form of the value
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
