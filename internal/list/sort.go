package list

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Direction is the sort direction. The zero value disables sorting.
type Direction int

const (
	DirectionNone Direction = iota
	Ascending
	Descending
)

// ParseDirection accepts "asc", "desc", "ascending" or "descending" in any case.
// An empty string parses to DirectionNone.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DirectionNone, nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return DirectionNone, fmt.Errorf("unknown sort direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// SortSpec names the field to sort on and the direction.
type SortSpec struct {
	On        string
	Direction Direction
}

func (s SortSpec) active() bool {
	return s.On != "" && (s.Direction == Ascending || s.Direction == Descending)
}

// Sort returns a stably ordered copy of items. Input order is kept unless the SortSpec is
// active and the first item has the sort field.
func Sort(items []Item, spec SortSpec) []Item {
	out := slices.Clone(items)
	if out == nil {
		out = []Item{}
	}
	if len(out) == 0 || !spec.active() {
		return out
	}
	if _, ok := out[0].Field(spec.On); !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b Item) int {
		av, _ := a.Field(spec.On)
		bv, _ := b.Field(spec.On)
		result := compareValues(av, bv)
		if spec.Direction == Descending {
			return -result
		}
		return result
	})
	return out
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		return compareOrdered(strings.ToLower(av), strings.ToLower(bv))
	case bool:
		bv, ok := b.(bool)
		if !ok || av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0
		}
		return av.Compare(bv)
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0
	}
	return compareOrdered(af, bf)
}

// compareOrdered uses only < and > so that NaN ties with everything.
func compareOrdered[T string | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
