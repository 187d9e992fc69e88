package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is an ordered list of trimmed, non-empty strings. In JSON it
// accepts either an array or the comma separated form typed into a form
// field.
type StringList []string

// ParseList splits comma separated input, trims each segment and drops
// empty ones: "React,, TypeScript," gives [React TypeScript].
func ParseList(s string) StringList {
	out := StringList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (l StringList) Normalize() StringList {
	out := make(StringList, 0, len(l))
	for _, item := range l {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (l StringList) String() string {
	return strings.Join(l, ", ")
}

func (l *StringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = StringList{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = ParseList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("list must be a string or an array of strings: %w", err)
	}
	*l = StringList(items).Normalize()
	return nil
}
