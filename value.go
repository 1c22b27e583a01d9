package xlreshape

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindTime
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is a single cell value. The zero Value is null.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a date/time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// ValueOf converts a Go value into a Value. Unsupported types are rendered with %v.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Time(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	default:
		return String(fmt.Sprintf("%v", v))
	}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) Float() float64 { return v.num }
func (v Value) Str() string { return v.str }
func (v Value) Boolean() bool { return v.b }
func (v Value) Instant() time.Time { return v.t }

// Interface returns the native Go value: nil, float64, string, bool or time.Time.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// String renders the raw value text. Integral numbers have no fractional part
// and dates at midnight are rendered without a time component.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatFloat(v.num, 'f', 0, 64)
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Equal reports exact scalar equality: same kind and same payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// kindRank fixes the cross-kind order: numbers, strings, booleans, times, null.
func kindRank(k Kind) int {
	switch k {
	case KindNumber:
		return 0
	case KindString:
		return 1
	case KindBool:
		return 2
	case KindTime:
		return 3
	default:
		return 4
	}
}

// Compare returns -1, 0 or +1. Values of different kinds order by kind
// (numbers < strings < booleans < times < null); within a kind by natural order.
func (v Value) Compare(o Value) int {
	if rv, ro := kindRank(v.kind), kindRank(o.kind); rv != ro {
		if rv < ro {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(v.str, o.str)
	case KindBool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		}
		return 1
	case KindTime:
		return v.t.Compare(o.t)
	default:
		return 0
	}
}
