package skills

import (
	"fmt"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/effects"
)

// Kinds of behaviours in the blueprint catalog.
const (
	KindDamage = "damage"
	KindEffect = "effect"
	KindSpawn  = "spawn"
	KindScript = "script"
)

// New builds a behaviour from its catalog definition.
func New(kind string, p domain.Params) (domain.Behaviour, error) {
	switch kind {
	case KindDamage:
		return Damage{
			Amount: p.Int("amount", 1),
			Type:   domain.DamageType(p.String("type", "")),
			Self:   p.Bool("self", false),
		}, nil

	case KindEffect:
		eff, err := effects.New(p.String("effect", ""), p.Map("params"))
		if err != nil {
			return nil, err
		}
		return ApplyEffect{Template: eff, Self: p.Bool("self", false)}, nil

	case KindSpawn:
		tpl := p.String("template", "")
		if tpl == "" {
			return nil, fmt.Errorf("spawn behaviour without template")
		}
		return Spawn{
			TemplateID:  tpl,
			Independent: p.Bool("independent", false),
			Loop:        p.Bool("loop", false),
			Max:         p.Int("max", 0),
		}, nil

	case KindScript:
		s, err := NewScript(p.String("name", "script"), p.String("source", ""))
		if err != nil {
			return nil, err
		}
		if kind := p.String("effect", ""); kind != "" {
			eff, err := effects.New(kind, p.Map("params"))
			if err != nil {
				return nil, err
			}
			s.Effect = eff
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown behaviour kind %q", kind)
}
