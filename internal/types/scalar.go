package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type scalarKind uint8

const (
	kindNull scalarKind = iota
	kindString
	kindNumber
	kindBool
	kindJSON // object or array, kept as compact JSON text
)

// Scalar is a nullable, loosely typed JSON value.
//
// It decodes from any JSON value, encodes back to the same JSON type, and
// implements driver.Valuer and sql.Scanner so it can be passed straight to
// a parameterised statement. The zero value is JSON null / SQL NULL, which
// is what an absent payload field turns into.
type Scalar struct {
	raw  string
	kind scalarKind
}

// Null returns the null Scalar.
func Null() Scalar { return Scalar{} }

// Text returns a Scalar holding a JSON string.
func Text(s string) Scalar { return Scalar{raw: s, kind: kindString} }

// Integer returns a Scalar holding a JSON number.
func Integer(n int64) Scalar { return Scalar{raw: strconv.FormatInt(n, 10), kind: kindNumber} }

// IsNull reports whether the value is null or was never set.
func (s Scalar) IsNull() bool { return s.kind == kindNull }

// String returns the textual form of the value; "" for null.
func (s Scalar) String() string { return s.raw }

// Int interprets the value the way a lenient form parser would: JSON
// numbers are truncated towards zero and strings contribute their leading
// integer prefix ("5", " 7 beds", "-2"). Anything else, including an
// empty prefix, reports false.
func (s Scalar) Int() (int, bool) {
	switch s.kind {
	case kindNumber:
		f, err := strconv.ParseFloat(s.raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		f = math.Trunc(f)
		if f > math.MaxInt32 || f < math.MinInt32 {
			return 0, false
		}
		return int(f), true
	case kindString:
		return leadingInt(s.raw)
	default:
		return 0, false
	}
}

// Truthy reports whether the value counts as present for a required
// field: null, "", false and numeric zero do not.
func (s Scalar) Truthy() bool {
	switch s.kind {
	case kindNull:
		return false
	case kindString:
		return s.raw != ""
	case kindBool:
		return s.raw == "true"
	case kindNumber:
		f, err := strconv.ParseFloat(s.raw, 64)
		return err == nil && f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

// IntegerAffinity converts text that reads as a number into a JSON number,
// the way an INTEGER column coerces what it stores: "7" becomes 7, "4.0"
// becomes 4 and "2.5" stays 2.5. Other values are returned unchanged.
func (s Scalar) IntegerAffinity() Scalar {
	if s.kind != kindString {
		return s
	}
	t := strings.TrimSpace(s.raw)
	if !numericText(t) {
		return s
	}
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Integer(n)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(f, 0) {
		return s
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return Integer(int64(f))
	}
	return Scalar{raw: strconv.FormatFloat(f, 'g', -1, 64), kind: kindNumber}
}

// numericText reports whether t is a plain decimal literal: an optional
// sign, digits with at most one point, and an optional exponent.
func numericText(t string) bool {
	i := 0
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		i++
	}
	digits, point := 0, false
mantissa:
	for ; i < len(t); i++ {
		switch c := t[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !point:
			point = true
		default:
			break mantissa
		}
	}
	if digits == 0 {
		return false
	}
	if i == len(t) {
		return true
	}
	if t[i] != 'e' && t[i] != 'E' {
		return false
	}
	i++
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		i++
	}
	if i == len(t) {
		return false
	}
	for ; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return false
		}
	}
	return true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// UnmarshalJSON implements json.Unmarshaler. It never rejects a
// syntactically valid JSON value.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = Scalar{}
		return nil
	}

	switch data[0] {
	case 'n':
		*s = Scalar{}
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Text(str)
	case 't', 'f':
		*s = Scalar{raw: string(data), kind: kindBool}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*s = Scalar{raw: buf.String(), kind: kindJSON}
	default:
		*s = Scalar{raw: string(data), kind: kindNumber}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case kindNull:
		return []byte("null"), nil
	case kindString:
		return json.Marshal(s.raw)
	default:
		return []byte(s.raw), nil
	}
}

// Value implements driver.Valuer.
func (s Scalar) Value() (driver.Value, error) {
	switch s.kind {
	case kindNull:
		return nil, nil
	case kindNumber:
		if n, err := strconv.ParseInt(s.raw, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("types.Scalar: invalid number %q: %w", s.raw, err)
		}
		return f, nil
	case kindBool:
		return s.raw == "true", nil
	default:
		return s.raw, nil
	}
}

// Scan implements sql.Scanner.
func (s *Scalar) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Scalar{}
	case int64:
		*s = Integer(v)
	case int32:
		*s = Integer(int64(v))
	case float64:
		*s = Scalar{raw: strconv.FormatFloat(v, 'f', -1, 64), kind: kindNumber}
	case bool:
		*s = Scalar{raw: strconv.FormatBool(v), kind: kindBool}
	case []byte:
		*s = Text(string(v))
	case string:
		*s = Text(v)
	case time.Time:
		*s = Text(v.Format(time.RFC3339Nano))
	default:
		return fmt.Errorf("types.Scalar: cannot scan %T", src)
	}
	return nil
}
