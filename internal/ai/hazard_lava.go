package ai

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Состояния лавы
const (
	LavaActive   = "active"
	LavaSpawning = "spawning"
	LavaHardened = "hardened"
)

// HazardLava - клетка лавы. При создании сжигает то, что в ней стоит.
// Молодая лава (поколение 1..Max-1) один раз растекается в соседние клетки,
// через HardenAfter инициативы застывает в декорацию. Переходы необратимы:
//
//	active -> spawning -> hardened
//	active -> hardened
type HazardLava struct {
	base
	Generation     int
	MaxGenerations int
	MaxChildren    int
	Stagger        int // сдвиг инициативы между детьми
	HardenAfter    int
	ContactDamage  int
	HardenSolid    bool // застывшая лава непроходима

	state     *fsm.FSM
	bornAt    int
	firstSeen bool
	spawned   bool
}

func (*HazardLava) Kind() string { return KindHazardLava }

func (h *HazardLava) Clone() domain.AI {
	c := *h
	c.state = nil
	c.firstSeen, c.spawned = false, false
	return &c
}

// State - текущее состояние машины.
func (h *HazardLava) State() string {
	if h.state == nil {
		return LavaActive
	}
	return h.state.Current()
}

func newLavaFSM() *fsm.FSM {
	return fsm.NewFSM(
		LavaActive,
		fsm.Events{
			{Name: "spread", Src: []string{LavaActive}, Dst: LavaSpawning},
			{Name: "harden", Src: []string{LavaActive, LavaSpawning}, Dst: LavaHardened},
		},
		fsm.Callbacks{},
	)
}

func (h *HazardLava) OnCreate(ctx domain.Context, self *domain.Entity) error {
	h.state = newLavaFSM()
	h.bornAt = ctx.Now()
	self.AddTag(domain.TagHazard)

	for _, other := range ctx.EntitiesAt(self.Pos.X, self.Pos.Y) {
		if other == self || !other.IsAlive() || other.HasTag(domain.TagEmitter) {
			continue
		}
		switch {
		case other.Dressing || other.HasTag(domain.TagHazard):
			ctx.Destroy(other)
		case other.HasTag(domain.TagFlying):
		default:
			other.Damage(ctx, h.ContactDamage, domain.DamageFire)
		}
	}
	ctx.Cues().EmitParticle(domain.ParticleFire, domain.AtEntity(self))
	return nil
}

func (h *HazardLava) OnRound(ctx domain.Context, self *domain.Entity) error {
	if h.state == nil {
		h.state = newLavaFSM()
		h.bornAt = ctx.Now()
	}
	if h.state.Is(LavaHardened) {
		return nil
	}

	if ctx.Now()-h.bornAt >= h.HardenAfter {
		return h.harden(ctx, self)
	}

	// Первый раунд пропускаем: дети не растекаются в тот же ход, что родились
	if !h.firstSeen {
		h.firstSeen = true
		return nil
	}

	if !h.spawned && h.Generation > 0 && h.Generation < h.MaxGenerations {
		h.spawned = true
		if err := h.state.Event(context.Background(), "spread"); err != nil {
			return err
		}
		h.spread(ctx, self)
	}
	return nil
}

func (h *HazardLava) spread(ctx domain.Context, self *domain.Entity) {
	now := ctx.Now()
	children := 0
	for _, i := range ctx.RNG().Perm(len(domain.Neighbours)) {
		if children >= h.MaxChildren {
			break
		}
		p := self.Pos.Shift(domain.Neighbours[i].X, domain.Neighbours[i].Y)
		if !ctx.IsFree(p.X, p.Y) {
			continue
		}
		child := ctx.CreateEntity(self.TemplateID, p.X, p.Y)
		if child == nil {
			break
		}
		if lava, ok := child.AI.(*HazardLava); ok {
			lava.Generation = h.Generation + 1
		}
		children++
		ctx.Reschedule(child, now+children*h.Stagger)
	}

	ctx.Log().WithFields(logrus.Fields{
		"entity_id":  self.ID,
		"generation": h.Generation,
		"children":   children,
	}).Debug("Lava spread")
}

func (h *HazardLava) harden(ctx domain.Context, self *domain.Entity) error {
	if err := h.state.Event(context.Background(), "harden"); err != nil {
		return err
	}
	self.RemoveTag(domain.TagHazard)
	self.AddTag(domain.TagHardened)
	if h.HardenSolid {
		self.AddTag(domain.TagSolid)
	}
	self.Static = true
	self.Dressing = true

	ctx.Cues().RemoveParticle(domain.AtEntity(self), domain.ParticleFire)
	ctx.Animator().SetAnimation(self.ID, domain.AnimHardened)
	self.SetAI(ctx, &Inert{})
	return nil
}
