package core

import (
	"fmt"
	"strconv"
)

// ---------- Scalar Literals ----------

// IntLit is an integer literal. Raw is the source text.
type IntLit struct {
	NodeInfo
	Value int64
	Raw   string
}

func (*IntLit) exprNode() {}

// FloatLit is a floating-point literal. Raw is the source text.
type FloatLit struct {
	NodeInfo
	Value float64
	Raw   string
}

func (*FloatLit) exprNode() {}

// StringLit is a string literal. Value is the content between the quotes with
// escape sequences left exactly as written; Quote is the delimiter used.
type StringLit struct {
	NodeInfo
	Value string
	Quote string // ', ", ''' or """
}

func (*StringLit) exprNode() {}

// Raw returns the literal as it appeared in source, delimiters included.
func (s *StringLit) Raw() string {
	return s.Quote + s.Value + s.Quote
}

// BoolLit is True or False.
type BoolLit struct {
	NodeInfo
	Value bool
}

func (*BoolLit) exprNode() {}

// NoneLit is None.
type NoneLit struct {
	NodeInfo
}

func (*NoneLit) exprNode() {}

// ---------- Timeframes ----------

// TimeframeLit is a pandas-style sampling interval such as 1D, 15Min, 1ME or
// 1W-MON-2nd. Count is always positive.
type TimeframeLit struct {
	NodeInfo
	Count   int
	Unit    TimeframeUnit
	Weekday string // SUN..SAT, only for anchored weekly frames
	Ordinal string // 1st, 2nd, 3rd, 4th or Last; requires Weekday
	Raw     string
}

func (*TimeframeLit) exprNode() {}

// String renders the canonical spelling.
func (t *TimeframeLit) String() string {
	s := strconv.Itoa(t.Count) + string(t.Unit)
	if t.Weekday != "" {
		s += "-" + t.Weekday
		if t.Ordinal != "" {
			s += "-" + t.Ordinal
		}
	}
	return s
}

// TimeframeUnit is the unit suffix of a timeframe literal.
type TimeframeUnit string

// Timeframe units.
const (
	UnitSecond       TimeframeUnit = "s"
	UnitMinute       TimeframeUnit = "Min"
	UnitHour         TimeframeUnit = "H"
	UnitDay          TimeframeUnit = "D"
	UnitWeek         TimeframeUnit = "W"
	UnitMonth        TimeframeUnit = "M"
	UnitMonthStart   TimeframeUnit = "MS"
	UnitMonthEnd     TimeframeUnit = "ME"
	UnitQuarter      TimeframeUnit = "Q"
	UnitQuarterStart TimeframeUnit = "QS"
	UnitQuarterEnd   TimeframeUnit = "QE"
	UnitYear         TimeframeUnit = "Y"
	UnitYearStart    TimeframeUnit = "YS"
	UnitYearEnd      TimeframeUnit = "YE"
)

// Weekdays are the anchors accepted after W-, in week order.
var Weekdays = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Ordinals are the occurrence suffixes accepted after a weekday anchor.
var Ordinals = []string{"1st", "2nd", "3rd", "4th", "Last"}

// Validate checks the structural invariants of a timeframe.
func (t *TimeframeLit) Validate() error {
	if t.Count <= 0 {
		return fmt.Errorf("timeframe count must be positive, got %d", t.Count)
	}
	if t.Weekday != "" && t.Unit != UnitWeek {
		return fmt.Errorf("weekday anchor %s requires weekly unit, got %s", t.Weekday, t.Unit)
	}
	if t.Ordinal != "" && t.Weekday == "" {
		return fmt.Errorf("ordinal %s requires a weekday anchor", t.Ordinal)
	}
	return nil
}

// ---------- Container Literals ----------

// ListLit is `[a, b, ...]`.
type ListLit struct {
	NodeInfo
	Elems []Expr
}

func (*ListLit) exprNode() {}

// TupleLit is `()`, `(a,)` or `(a, b, ...)`. A parenthesized single expression
// without a trailing comma is never a TupleLit.
type TupleLit struct {
	NodeInfo
	Elems []Expr
}

func (*TupleLit) exprNode() {}

// DictLit is `{key: value, ...}` with entries in source order.
type DictLit struct {
	NodeInfo
	Entries []*DictEntry
}

func (*DictLit) exprNode() {}

// DictEntry is one `key: value` pair. Key is *Ident or *StringLit.
type DictEntry struct {
	NodeInfo
	Key   Expr
	Value Expr
}

// KeyName returns the key text: the identifier name or the raw string content.
func (e *DictEntry) KeyName() string {
	switch k := e.Key.(type) {
	case *Ident:
		return k.Name
	case *StringLit:
		return k.Value
	default:
		return ""
	}
}
