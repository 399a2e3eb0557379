package config

// PacePreset represents a named cascade speed.
type PacePreset string

const (
	PaceSlow    PacePreset = "slow"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
)

// ParsePace returns the preset for name, or false if it is unknown.
// An empty name means normal.
func ParsePace(name string) (PacePreset, bool) {
	switch p := PacePreset(name); p {
	case PaceSlow, PaceNormal, PaceFast, PaceInstant:
		return p, true
	case "":
		return PaceNormal, true
	default:
		return "", false
	}
}

// ApplyPacePreset scales the configured pacing by a speed preset.
// Normal keeps the configured values.
func ApplyPacePreset(cfg *ChainReactionConfig, preset PacePreset) {
	p := &cfg.Pacing
	switch preset {
	case PaceSlow:
		p.ExplosionDelayMs *= 2
		p.FlashMs *= 2
	case PaceFast:
		p.ExplosionDelayMs /= 3
		p.FlashMs /= 3
	case PaceInstant:
		// Cascades resolve within the placing tick
		p.ExplosionDelayMs = 0
		p.FlashMs = 0
	}
}
