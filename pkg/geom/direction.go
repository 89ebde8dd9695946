package geom

import (
	"fmt"
	"strings"
)

// Direction is the rotation sense of a cut.
type Direction int

const (
	CW Direction = iota
	CCW
	// Mixed lets each slice pick whichever rotation starts nearest to the
	// tool's current position.
	Mixed
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case CW:
		return "cw"
	case CCW:
		return "ccw"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Sign is +1 for CCW, -1 for CW and 0 for Mixed.
func (d Direction) Sign() float64 {
	switch d {
	case CCW:
		return 1
	case CW:
		return -1
	}
	return 0
}

// ParseDirection accepts "cw", "ccw" or "mixed" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise":
		return CW, nil
	case "ccw", "counterclockwise":
		return CCW, nil
	case "mixed", "unknown":
		return Mixed, nil
	}
	return CW, fmt.Errorf("invalid direction %q, expected cw, ccw or mixed", s)
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
