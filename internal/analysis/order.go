package analysis

import (
	"fmt"
	"strings"
)

// Order is a growth class: n^Degree, times log n when Log is set, or 2^n
// when Exponential is set.
type Order struct {
	Degree      int
	Log         bool
	Exponential bool
}

// Less reports whether o grows strictly slower than p.
func (o Order) Less(p Order) bool {
	if o.Exponential != p.Exponential {
		return p.Exponential
	}
	if o.Degree != p.Degree {
		return o.Degree < p.Degree
	}
	return !o.Log && p.Log
}

var superscripts = map[int]string{2: "²", 3: "³"}

func (o Order) String() string {
	if o.Exponential {
		return "O(2^n)"
	}
	var parts []string
	switch {
	case o.Degree == 1:
		parts = append(parts, "n")
	case o.Degree > 1:
		if s, ok := superscripts[o.Degree]; ok {
			parts = append(parts, "n"+s)
		} else {
			parts = append(parts, fmt.Sprintf("n^%d", o.Degree))
		}
	}
	if o.Log {
		parts = append(parts, "log n")
	}
	if len(parts) == 0 {
		return "O(1)"
	}
	return "O(" + strings.Join(parts, " ") + ")"
}

// Rating buckets an Order for display.
type Rating string

const (
	RatingGood Rating = "good"
	RatingOK   Rating = "ok"
	RatingBad  Rating = "bad"
)

// Rating returns good up to O(n), ok for O(n log n), bad beyond.
func (o Order) Rating() Rating {
	switch {
	case o.Exponential || o.Degree >= 2:
		return RatingBad
	case o.Degree == 1 && o.Log:
		return RatingOK
	default:
		return RatingGood
	}
}
