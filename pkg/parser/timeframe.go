package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/epochscript/pkg/core"
)

// Timeframe literals follow pandas offset aliases:
//
//	timeframe → count ( "Min"
//	                  | "W-" weekday [ "-" ordinal ]
//	                  | ("M"|"Q"|"Y") ("S"|"E")
//	                  | "s"|"H"|"D"|"W"|"M"|"Q"|"Y" )
//	count     → [1-9][0-9]*
//
// All alternatives are tried and the longest one wins, so 1Min is never
// 1M followed by "in", and 1W-MON-1st is never 1W followed by stray text.

// timeframeParts is the decoded form of a timeframe lexeme.
type timeframeParts struct {
	count   string
	unit    core.TimeframeUnit
	weekday string
	ordinal string
}

// scanTimeframe returns the length of the longest timeframe at the start of s,
// or 0 if s does not start with one.
func scanTimeframe(s string) (int, timeframeParts) {
	if len(s) == 0 || s[0] < '1' || s[0] > '9' {
		return 0, timeframeParts{}
	}
	i := 1
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	parts := timeframeParts{count: s[:i]}
	rest := s[i:]

	// Weekly anchored: W-MON, optionally W-MON-2nd
	if strings.HasPrefix(rest, "W-") {
		for _, day := range core.Weekdays {
			if !strings.HasPrefix(rest[2:], day) {
				continue
			}
			n := i + 2 + len(day)
			parts.unit = core.UnitWeek
			parts.weekday = day
			if tail := s[n:]; strings.HasPrefix(tail, "-") {
				for _, ord := range core.Ordinals {
					if strings.HasPrefix(tail[1:], ord) {
						parts.ordinal = ord
						n += 1 + len(ord)
						break
					}
				}
			}
			return n, parts
		}
	}

	if strings.HasPrefix(rest, "Min") {
		parts.unit = core.UnitMinute
		return i + 3, parts
	}

	if len(rest) >= 2 && strings.IndexByte("MQY", rest[0]) >= 0 && strings.IndexByte("SE", rest[1]) >= 0 {
		parts.unit = core.TimeframeUnit(rest[:2])
		return i + 2, parts
	}

	if len(rest) >= 1 && strings.IndexByte("sHDWMQY", rest[0]) >= 0 {
		parts.unit = core.TimeframeUnit(rest[:1])
		return i + 1, parts
	}

	return 0, timeframeParts{}
}

// build converts scanned parts into a literal node. The only failure is a
// count too large for int.
func (tp timeframeParts) build(raw string) (*core.TimeframeLit, error) {
	count, err := strconv.Atoi(tp.count)
	if err != nil {
		return nil, fmt.Errorf(ErrTimeframeRange, raw)
	}
	return &core.TimeframeLit{
		Count:   count,
		Unit:    tp.unit,
		Weekday: tp.weekday,
		Ordinal: tp.ordinal,
		Raw:     raw,
	}, nil
}

// ParseTimeframe decodes a standalone timeframe string such as "15Min" or
// "1W-FRI-Last". The whole string must be a single timeframe.
func ParseTimeframe(s string) (*core.TimeframeLit, error) {
	n, parts := scanTimeframe(s)
	if n == 0 || n != len(s) {
		return nil, fmt.Errorf("invalid timeframe %q", s)
	}
	return parts.build(s)
}
