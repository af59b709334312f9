package duel

import (
	"fmt"

	"github.com/hashicorp/errwrap"
	"github.com/pkg/errors"
)

// NewBattleConfig validates arena size and tick bound against §6's ranges
// and returns a BattleConfig, or an error chain naming every violation at
// once (not just the first) via errwrap, the way the teacher's supervisory
// layer composes multi-cause boundary errors.
func NewBattleConfig(arenaSize, maxTicks int) (BattleConfig, error) {
	var violations []error

	if arenaSize < ArenaSizeMin || arenaSize > ArenaSizeMax {
		violations = append(violations, fmt.Errorf(
			"arena size %d out of range [%d, %d]", arenaSize, ArenaSizeMin, ArenaSizeMax))
	}
	if maxTicks < MaxTicksMin || maxTicks > MaxTicksMax {
		violations = append(violations, fmt.Errorf(
			"max ticks %d out of range [%d, %d]", maxTicks, MaxTicksMin, MaxTicksMax))
	}

	if len(violations) == 0 {
		return BattleConfig{ArenaSize: arenaSize, MaxTicks: maxTicks}, nil
	}

	combined := violations[0]
	for _, v := range violations[1:] {
		combined = errwrap.Wrap(combined, v)
	}
	return BattleConfig{}, errors.Wrap(combined, "invalid battle config")
}

// validate re-checks a BattleConfig built by hand (e.g. a struct literal,
// or one loaded from a CLI config file) rather than through
// NewBattleConfig, which SimulateBattle requires at its boundary.
func (cfg BattleConfig) validate() error {
	_, err := NewBattleConfig(cfg.ArenaSize, cfg.MaxTicks)
	return err
}
