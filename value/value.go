// Package value implements the tagged value domain shared by every other
// component: the table engine stores rows of Values, the evaluator produces
// and consumes Values, and Value's stringification is the canonical,
// deterministic serialization used both to build index keys and to populate
// the evaluator's identifier environment.
package value

import (
	"encoding/hex"
	"strconv"

	"github.com/miniql/miniql/errs"
)

// Kind identifies which case of the Value union is populated.
type Kind int

const (
	// Int holds a 64-bit signed integer.
	Int Kind = iota
	// Double holds a 64-bit floating point number.
	Double
	// Bool holds a boolean.
	Bool
	// Str holds a UTF-8 string.
	Str
	// Bytes holds an opaque byte sequence.
	Bytes
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "INT"
	case Double:
		return "DOUBLE"
	case Bool:
		return "BOOL"
	case Str:
		return "VARCHAR"
	case Bytes:
		return "BYTEBUFFER"
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps a schema type keyword (as it appears in CREATE TABLE) to a
// Kind. It is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "INT":
		return Int, nil
	case "DOUBLE":
		return Double, nil
	case "BOOL":
		return Bool, nil
	case "VARCHAR":
		return Str, nil
	case "BYTEBUFFER":
		return Bytes, nil
	default:
		return 0, errs.ParseStatement.New(s, "unknown column type")
	}
}

// Value is a tagged union over the five supported value cases. The zero
// Value is Int(0).
type Value struct {
	kind  Kind
	i     int64
	f     float64
	b     bool
	s     string
	bytes []byte
}

// NewInt constructs an Int value.
func NewInt(i int64) Value { return Value{kind: Int, i: i} }

// NewDouble constructs a Double value.
func NewDouble(f float64) Value { return Value{kind: Double, f: f} }

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewStr constructs a Str value.
func NewStr(s string) Value { return Value{kind: Str, s: s} }

// NewBytes constructs a Bytes value. The slice is not copied.
func NewBytes(b []byte) Value { return Value{kind: Bytes, bytes: b} }

// Zero returns the zero value for kind (0, 0.0, false, "", empty bytes).
func Zero(kind Kind) Value {
	switch kind {
	case Int:
		return NewInt(0)
	case Double:
		return NewDouble(0)
	case Bool:
		return NewBool(false)
	case Str:
		return NewStr("")
	case Bytes:
		return NewBytes(nil)
	default:
		return Value{}
	}
}

// Kind reports which case v holds.
func (v Value) Kind() Kind { return v.kind }

// IsInt reports whether v holds an Int.
func (v Value) IsInt() bool { return v.kind == Int }

// IsDouble reports whether v holds a Double.
func (v Value) IsDouble() bool { return v.kind == Double }

// IsBool reports whether v holds a Bool.
func (v Value) IsBool() bool { return v.kind == Bool }

// IsStr reports whether v holds a Str.
func (v Value) IsStr() bool { return v.kind == Str }

// IsBytes reports whether v holds Bytes.
func (v Value) IsBytes() bool { return v.kind == Bytes }

// IsNumeric reports whether v holds Int or Double.
func (v Value) IsNumeric() bool { return v.kind == Int || v.kind == Double }

// AsInt extracts the int64 case, promoting a Double by truncation.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case Int:
		return v.i, nil
	case Double:
		return int64(v.f), nil
	default:
		return 0, errs.TypeMismatch.New("INT", v.kind)
	}
}

// AsDouble extracts the float64 case, promoting an Int.
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case Double:
		return v.f, nil
	case Int:
		return float64(v.i), nil
	default:
		return 0, errs.TypeMismatch.New("DOUBLE", v.kind)
	}
}

// AsBool extracts the bool case. No implicit promotion applies.
func (v Value) AsBool() (bool, error) {
	if v.kind != Bool {
		return false, errs.TypeMismatch.New("BOOL", v.kind)
	}
	return v.b, nil
}

// AsStr extracts the string case. No implicit promotion applies.
func (v Value) AsStr() (string, error) {
	if v.kind != Str {
		return "", errs.TypeMismatch.New("VARCHAR", v.kind)
	}
	return v.s, nil
}

// AsBytes extracts the byte-buffer case. No implicit promotion applies.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != Bytes {
		return nil, errs.TypeMismatch.New("BYTEBUFFER", v.kind)
	}
	return v.bytes, nil
}

// String is the canonical stringification: int as decimal, double via
// strconv's shortest round-tripping form, bool as "0"/"1", string as-is,
// bytes as "0x" followed by lowercase hex. It is deterministic and total,
// and is reused verbatim as an index key and as an evaluator environment
// value.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Double:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Bool:
		if v.b {
			return "1"
		}
		return "0"
	case Str:
		return v.s
	case Bytes:
		return "0x" + hex.EncodeToString(v.bytes)
	default:
		return ""
	}
}

// Equal reports whether a and b compare equal, promoting Int to Double
// when comparing mixed numeric cases. Non-numeric cases must share the same
// Kind.
func Equal(a, b Value) (bool, error) {
	if a.IsNumeric() && b.IsNumeric() {
		if a.kind == Int && b.kind == Int {
			return a.i == b.i, nil
		}
		af, _ := a.AsDouble()
		bf, _ := b.AsDouble()
		return af == bf, nil
	}
	if a.kind != b.kind {
		return false, errs.TypeMismatch.New(a.kind, b.kind)
	}
	switch a.kind {
	case Bool:
		return a.b == b.b, nil
	case Str:
		return a.s == b.s, nil
	case Bytes:
		return string(a.bytes) == string(b.bytes), nil
	default:
		return false, errs.TypeMismatch.New(a.kind, b.kind)
	}
}

// Compare orders a relative to b: -1, 0, or 1. Numeric cases promote Int to
// Double; Str compares lexicographically; Bool and Bytes are not ordered.
func Compare(a, b Value) (int, error) {
	if a.IsNumeric() && b.IsNumeric() {
		if a.kind == Int && b.kind == Int {
			switch {
			case a.i < b.i:
				return -1, nil
			case a.i > b.i:
				return 1, nil
			default:
				return 0, nil
			}
		}
		af, _ := a.AsDouble()
		bf, _ := b.AsDouble()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.kind == Str && b.kind == Str {
		switch {
		case a.s < b.s:
			return -1, nil
		case a.s > b.s:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, errs.TypeMismatch.New(a.kind, b.kind)
}
