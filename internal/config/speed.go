package config

import (
	"fmt"
	"strings"
	"time"
)

// SpeedPreset scales the configured tick period.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// AllSpeedPresets returns all presets in display order.
func AllSpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast}
}

// ParseSpeedPreset parses a preset name. An empty name means normal.
func ParseSpeedPreset(name string) (SpeedPreset, error) {
	switch p := SpeedPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (want slow, normal or fast)", name)
	}
}

// Factor returns the multiplier applied to the tick period.
func (p SpeedPreset) Factor() float64 {
	switch p {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.6
	default:
		return 1.0
	}
}

// ApplySpeedPreset scales cfg's tick period. The result is never below 1ms.
func ApplySpeedPreset(cfg *SnakeConfig, preset SpeedPreset) {
	scaled := time.Duration(float64(cfg.TickPeriod.Std()) * preset.Factor())
	if scaled < time.Millisecond {
		scaled = time.Millisecond
	}
	cfg.TickPeriod = Duration(scaled)
}
