// Package ai contains the entity and area decision strategies.
package ai

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Kind ids used by the blueprint catalog.
const (
	KindInert       = "inert"
	KindMelee       = "melee"
	KindUser        = "user"
	KindAreaSpawner = "area_spawner"
	KindHazardLava  = "hazard_lava"
	KindLavaEmitter = "lava_emitter"
)

// base - пустые хуки, варианты переопределяют нужные.
type base struct{}

func (base) OnCreate(domain.Context, *domain.Entity) error { return nil }
func (base) OnRound(domain.Context, *domain.Entity) error  { return nil }
func (base) OnDestroy(domain.Context, *domain.Entity)      {}
func (base) OnDamage(_ domain.Context, _ *domain.Entity, amount int, _ domain.DamageType) int {
	return amount
}

// Inert ничего не делает. Декорации, застывшая лава.
type Inert struct{ base }

func (*Inert) Kind() string     { return KindInert }
func (*Inert) Clone() domain.AI { return &Inert{} }
