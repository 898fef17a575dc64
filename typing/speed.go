package typing

import (
	"fmt"
	"time"
)

// Speed selects the fixed inter-character delay for a typing job. The delay
// is deliberately not adaptive; pacing stays deterministic.
type Speed int

const (
	Slow Speed = iota
	Normal
	Fast
)

// Delay returns the pause inserted after each emitted character.
func (s Speed) Delay() time.Duration {
	switch s {
	case Slow:
		return 50 * time.Millisecond
	case Fast:
		return 10 * time.Millisecond
	default:
		return 25 * time.Millisecond
	}
}

func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Fast:
		return "fast"
	default:
		return "normal"
	}
}

// ParseSpeed converts a config string to a Speed.
func ParseSpeed(v string) (Speed, error) {
	switch v {
	case "slow":
		return Slow, nil
	case "normal", "":
		return Normal, nil
	case "fast":
		return Fast, nil
	}
	return Normal, fmt.Errorf("unknown typing speed: %s", v)
}

// UnmarshalText implements TOML/text decoding for Speed.
func (s *Speed) UnmarshalText(b []byte) error {
	v, err := ParseSpeed(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements TOML/text encoding for Speed.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
