package domain

import (
	"slices"
	"sort"
)

// SkillUse - контекст одного применения скилла.
type SkillUse struct {
	Skill  *Skill
	Actor  *Entity
	Target *Entity // для OnSelf - сам актор, для OnEmpty - nil
	X, Y   int
}

// Behaviour - один шаг скилла (урон, эффект, спавн, скрипт).
// Возвращает true, если что-то произошло.
type Behaviour interface {
	Apply(ctx Context, use SkillUse) bool
}

type Skill struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ComboSet   []string `json:"comboSet,omitempty"` // отсортирован
	CoolDown   int      `json:"coolDown"`
	RoundsToGo int      `json:"roundsToGo"`
	Priority   int      `json:"priority"`
	Range      int      `json:"range"`
	Animation  string   `json:"-"`

	Self   []Behaviour `json:"-"`
	Target []Behaviour `json:"-"`
	Empty  []Behaviour `json:"-"`
}

// SetComboSet сохраняет комбо в отсортированном виде.
func (s *Skill) SetComboSet(ids []string) {
	s.ComboSet = slices.Clone(ids)
	sort.Strings(s.ComboSet)
}

// Ready - скилл вне кулдауна.
func (s *Skill) Ready() bool {
	return s.RoundsToGo < 1
}

// Tick вызывается раз в ход владельца.
func (s *Skill) Tick() {
	if s.RoundsToGo > 0 {
		s.RoundsToGo--
	}
}

// Clone копирует счетчики. Behaviour'ы не имеют состояния и разделяются.
func (s *Skill) Clone() *Skill {
	c := *s
	c.ComboSet = slices.Clone(s.ComboSet)
	return &c
}

func (s *Skill) OnSelf(ctx Context, actor *Entity) bool {
	return s.run(ctx, s.Self, SkillUse{Skill: s, Actor: actor, Target: actor, X: actor.Pos.X, Y: actor.Pos.Y})
}

func (s *Skill) OnTarget(ctx Context, actor, target *Entity) bool {
	return s.run(ctx, s.Target, SkillUse{Skill: s, Actor: actor, Target: target, X: target.Pos.X, Y: target.Pos.Y})
}

func (s *Skill) OnEmpty(ctx Context, actor *Entity, x, y int) bool {
	return s.run(ctx, s.Empty, SkillUse{Skill: s, Actor: actor, X: x, Y: y})
}

// run выполняет ВСЕ behaviour'ы списка: успех, если сработал хотя бы один.
func (s *Skill) run(ctx Context, list []Behaviour, use SkillUse) bool {
	if !s.Ready() || len(list) == 0 {
		return false
	}
	ok := false
	for _, b := range list {
		if applyBehaviour(ctx, b, use) {
			ok = true
		}
	}
	if ok {
		if s.Animation != "" {
			ctx.Animator().SetAnimation(use.Actor.ID, s.Animation)
		}
		use.Actor.startCooldown(s)
	}
	return ok
}

func applyBehaviour(ctx Context, b Behaviour, use SkillUse) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Log().WithField("skill", use.Skill.ID).Errorf("behaviour panic: %v", r)
			ok = false
		}
	}()
	return b.Apply(ctx, use)
}
