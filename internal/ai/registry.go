package ai

import (
	"fmt"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// New builds an entity AI from its catalog definition.
func New(kind string, p domain.Params) (domain.AI, error) {
	switch kind {
	case KindInert, "":
		return &Inert{}, nil
	case KindMelee:
		return &Melee{SightRadius: p.Int("sight_radius", 0)}, nil
	case KindUser:
		return &User{}, nil
	case KindHazardLava:
		return &HazardLava{
			Generation:     p.Int("generation", 1),
			MaxGenerations: p.Int("max_generations", 3),
			MaxChildren:    p.Int("max_children", 3),
			Stagger:        p.Int("stagger", domain.RoundLength/4),
			HardenAfter:    p.Int("harden_after", 6*domain.RoundLength),
			ContactDamage:  p.Int("contact_damage", 3),
			HardenSolid:    p.Bool("harden_solid", false),
		}, nil
	case KindLavaEmitter:
		tpl := p.String("lava_template", "")
		if tpl == "" {
			return nil, fmt.Errorf("lava emitter without lava_template")
		}
		return &HazardLavaEmitter{
			StartDelay:     p.Int("start_delay", 3*domain.RoundLength),
			ActiveDuration: p.Int("active_duration", 2*domain.RoundLength),
			LavaTemplate:   tpl,
		}, nil
	}
	return nil, fmt.Errorf("unknown ai kind %q", kind)
}
