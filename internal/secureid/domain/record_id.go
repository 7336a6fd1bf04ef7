package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type recordIDKind uint8

const (
	recordIDNone recordIDKind = iota
	recordIDInt
	recordIDString
)

// RecordID is an integer-or-string record identifier.
// The zero value is unset. RecordID is comparable and safe to use as a map key.
type RecordID struct {
	kind recordIDKind
	i    int64
	s    string
}

// IntID returns an integer record identifier.
func IntID(id int64) RecordID {
	return RecordID{kind: recordIDInt, i: id}
}

// StringID returns a string record identifier.
func StringID(id string) RecordID {
	return RecordID{kind: recordIDString, s: id}
}

// ParseRecordID returns an IntID when s is a base 10 integer and a StringID otherwise.
func ParseRecordID(s string) RecordID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}
	return StringID(s)
}

// IsZero reports whether the identifier is unset or an empty string.
func (r RecordID) IsZero() bool {
	return r.kind == recordIDNone || (r.kind == recordIDString && r.s == "")
}

// IsSet reports whether the identifier holds a value. StringID("") is set.
func (r RecordID) IsSet() bool {
	return r.kind != recordIDNone
}

// IsString reports whether the identifier holds a string.
func (r RecordID) IsString() bool {
	return r.kind == recordIDString
}

// Int64 returns the integer value and true for integer identifiers.
func (r RecordID) Int64() (int64, bool) {
	return r.i, r.kind == recordIDInt
}

func (r RecordID) String() string {
	switch r.kind {
	case recordIDInt:
		return strconv.FormatInt(r.i, 10)
	case recordIDString:
		return r.s
	default:
		return ""
	}
}

// Value returns the identifier as int64, string or nil.
func (r RecordID) Value() any {
	switch r.kind {
	case recordIDInt:
		return r.i
	case recordIDString:
		return r.s
	default:
		return nil
	}
}

// MarshalJSON encodes integer identifiers as JSON numbers and string identifiers as JSON strings.
func (r RecordID) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case recordIDInt:
		return strconv.AppendInt(nil, r.i, 10), nil
	case recordIDString:
		return json.Marshal(r.s)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON string, an integral JSON number or null.
func (r *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = RecordID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = StringID(s)
		return nil
	default:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("record id must be a string or an integer: %s", data)
		}
		*r = IntID(n)
		return nil
	}
}
