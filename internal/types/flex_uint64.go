package types

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexUint64 is an id that tolerates both JSON numbers and numeric JSON
// strings on the wire. Clients generated from the dashboard send numbers;
// some scripted callers quote them.
type FlexUint64 uint64

// UnmarshalJSON accepts 7 and "7" interchangeably.
func (f *FlexUint64) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("id must be a number or numeric string, got %s", raw)
		}
		raw = unquoted
	}

	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id must be a non-negative integer, got %q", raw)
	}
	*f = FlexUint64(val)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (f FlexUint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(f), 10)), nil
}

// Uint64 unwraps the id.
func (f FlexUint64) Uint64() uint64 {
	return uint64(f)
}
