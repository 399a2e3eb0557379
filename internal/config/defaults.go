package config

import (
	_ "embed"
)

//go:embed defaults/chainreaction.yaml
var defaultChainReactionYAML []byte

// DefaultChainReactionConfig returns the default Chain Reaction configuration.
func DefaultChainReactionConfig() ChainReactionConfig {
	return ChainReactionConfig{
		Players: PlayersConfig{
			Default: 2,
			Min:     2,
			Max:     9,
		},
		Grid: GridConfig{
			Preset: PresetAuto,
			Presets: []GridPreset{
				{Name: "compact", Width: 8, Height: 10},
				{Name: "standard", Width: 10, Height: 12},
				{Name: "large", Width: 12, Height: 14},
			},
			CellWidth:  5,
			CellHeight: 2,
		},
		Pacing: PacingConfig{
			ExplosionDelayMs: 150,
			FlashMs:          150,
		},
	}
}
