package ai

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Состояния жерла
const (
	EmitterIdle   = "idle"
	EmitterActive = "active"
)

// HazardLavaEmitter - жерло: через StartDelay после базовой отметки
// выпускает лаву (поколение 1) и открывается, через ActiveDuration
// закрывается и переносит отметку на текущую инициативу.
type HazardLavaEmitter struct {
	base
	StartDelay     int
	ActiveDuration int
	LavaTemplate   string

	state    *fsm.FSM
	baseline int
}

func (*HazardLavaEmitter) Kind() string { return KindLavaEmitter }

func (h *HazardLavaEmitter) Clone() domain.AI {
	c := *h
	c.state = nil
	return &c
}

func (h *HazardLavaEmitter) State() string {
	if h.state == nil {
		return EmitterIdle
	}
	return h.state.Current()
}

func (h *HazardLavaEmitter) OnCreate(ctx domain.Context, self *domain.Entity) error {
	h.state = fsm.NewFSM(
		EmitterIdle,
		fsm.Events{
			{Name: "open", Src: []string{EmitterIdle}, Dst: EmitterActive},
			{Name: "close", Src: []string{EmitterActive}, Dst: EmitterIdle},
		},
		fsm.Callbacks{
			"enter_" + EmitterActive: func(_ context.Context, _ *fsm.Event) {
				ctx.Animator().SetAnimation(self.ID, domain.AnimOpen)
			},
			"enter_" + EmitterIdle: func(_ context.Context, _ *fsm.Event) {
				ctx.Animator().SetAnimation(self.ID, domain.AnimClosed)
			},
		},
	)
	h.baseline = ctx.Now()
	self.AddTag(domain.TagEmitter)
	return nil
}

func (h *HazardLavaEmitter) OnRound(ctx domain.Context, self *domain.Entity) error {
	if h.state == nil {
		if err := h.OnCreate(ctx, self); err != nil {
			return err
		}
	}
	elapsed := ctx.Now() - h.baseline

	switch h.state.Current() {
	case EmitterIdle:
		if elapsed < h.StartDelay {
			return nil
		}
		if err := h.state.Event(context.Background(), "open"); err != nil {
			return err
		}
		if lava := ctx.CreateEntity(h.LavaTemplate, self.Pos.X, self.Pos.Y); lava != nil {
			if l, ok := lava.AI.(*HazardLava); ok {
				l.Generation = 1
			}
			lava.OwnerID = self.ID
		}

	case EmitterActive:
		if elapsed < h.StartDelay+h.ActiveDuration {
			return nil
		}
		if err := h.state.Event(context.Background(), "close"); err != nil {
			return err
		}
		h.baseline = ctx.Now()
	}
	return nil
}
