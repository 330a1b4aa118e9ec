package espn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The provider is inconsistent about numeric encoding: the same field can
// arrive as a number, a quoted number, or null depending on view and season.
// FlexFloat and FlexInt absorb all three.

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Float returns the value, treating a nil record field as 0.
func (f *FlexFloat) Float() float64 {
	if f == nil {
		return 0
	}
	return float64(*f)
}

type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(f)
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// Int returns the value, treating a nil record field as 0.
func (i *FlexInt) Int() int {
	if i == nil {
		return 0
	}
	return int(*i)
}

// Str returns the dereferenced string, or "" for a missing field.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Bool returns the dereferenced flag, or false for a missing field.
func Bool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
