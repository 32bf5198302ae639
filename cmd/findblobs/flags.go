package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/imlib"
)

// thresholdList collects repeated -t flags.
type thresholdList []imlib.Threshold

func (l *thresholdList) String() string {
	parts := make([]string, len(*l))
	for i, t := range *l {
		parts[i] = fmt.Sprintf("%d,%d,%d,%d,%d,%d", t.LMin, t.LMax, t.AMin, t.AMax, t.BMin, t.BMax)
	}
	return strings.Join(parts, " ")
}

// Set parses "min,max" as a gray range or six values as an L*a*b* range.
func (l *thresholdList) Set(s string) error {
	v, err := parseInts(s)
	if err != nil {
		return err
	}
	switch len(v) {
	case 2:
		*l = append(*l, imlib.GrayThreshold(v[0], v[1]))
	case 6:
		*l = append(*l, imlib.LABThreshold(v[0], v[1], v[2], v[3], v[4], v[5]))
	default:
		return fmt.Errorf("threshold %q: want 2 or 6 values, got %d", s, len(v))
	}
	return nil
}

// rectFlag parses "x,y,w,h".
type rectFlag struct {
	r   imlib.Rect
	set bool
}

func (f *rectFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", f.r.X, f.r.Y, f.r.W, f.r.H)
}

func (f *rectFlag) Set(s string) error {
	v, err := parseInts(s)
	if err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("roi %q: want x,y,w,h", s)
	}
	f.r = imlib.R(v[0], v[1], v[2], v[3])
	f.set = true
	return nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	v := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		v[i] = n
	}
	return v, nil
}
