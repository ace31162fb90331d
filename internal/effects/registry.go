package effects

import (
	"fmt"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// New builds an effect from a catalog definition.
//
//	duration: initiative units (default 3 rounds), infinite: true overrides it
//	strength, multiplier, type: variant specific
func New(kind string, p domain.Params) (domain.Effect, error) {
	duration := p.Int("duration", 3*domain.RoundLength)
	if p.Bool("infinite", false) {
		duration = domain.EffectInfinite
	}
	dt := domain.DamageType(p.String("type", ""))

	switch kind {
	case KindBurning:
		return NewBurning(duration, p.Int("strength", 1)), nil
	case KindFreeze:
		return NewFreeze(duration), nil
	case KindGuard:
		return NewGuard(duration, p.Int("strength", 1), dt), nil
	case KindVulnerable:
		return NewVulnerable(duration, p.Float("multiplier", 2), dt), nil
	case KindHaste:
		return NewHaste(duration, p.Float("multiplier", 2)), nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", kind)
}
