package domain

import (
	"testing"
)

func TestEntity_Damage(t *testing.T) {
	t.Run("Physical damage without effects", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)

		got := e.Damage(ctx, 4, DamagePhysical)

		if got != 4 || e.Health() != 6 {
			t.Errorf("dealt %d, health %d; want 4 and 6", got, e.Health())
		}
		if len(ctx.kills) != 0 {
			t.Errorf("unexpected kill notification: %v", ctx.kills)
		}
		if len(ctx.cues) != 1 || ctx.cues[0] != "+"+ParticleBlood {
			t.Errorf("expected blood cue, got %v", ctx.cues)
		}
	})

	t.Run("Fire damage emits no blood", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		e.Damage(ctx, 2, DamageFire)
		if len(ctx.cues) != 0 {
			t.Errorf("cues = %v, want none", ctx.cues)
		}
	})

	t.Run("Kill is issued exactly once", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)

		e.Damage(ctx, 15, DamagePhysical)
		e.Damage(ctx, 15, DamagePhysical)

		if len(ctx.kills) != 1 {
			t.Fatalf("kills = %d, want 1", len(ctx.kills))
		}
		if !e.Killed {
			t.Error("entity should be flagged as killed")
		}
	})

	t.Run("Effects and AI reduce damage in order, never below zero", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		e.AI = &scriptedAI{absorb: 5}
		e.AddEffect(ctx, &testEffect{kind: "guard", remaining: EffectInfinite, guard: 1})

		got := e.Damage(ctx, 3, DamageIce)

		if got != 0 || e.Health() != 10 {
			t.Errorf("dealt %d, health %d; want 0 and 10", got, e.Health())
		}
	})
}

func TestEntity_AddEffect_RefreshesToMax(t *testing.T) {
	ctx := newStubCtx()
	e := newTestEntity(1)

	first := &testEffect{kind: "burning", remaining: 300}
	e.AddEffect(ctx, first)
	e.AddEffect(ctx, &testEffect{kind: "burning", remaining: 500})
	e.AddEffect(ctx, &testEffect{kind: "burning", remaining: 100})

	if len(e.Effects) != 1 {
		t.Fatalf("effects = %d, want 1", len(e.Effects))
	}
	if e.Effects[0] != first {
		t.Error("original instance must be kept")
	}
	if first.Duration() != 500 {
		t.Errorf("duration = %d, want 500", first.Duration())
	}
}

func TestEntity_AddSkill_SortsByPriority(t *testing.T) {
	e := newTestEntity(1)
	e.AddSkill(&Skill{ID: "low", Priority: 1})
	e.AddSkill(&Skill{ID: "high", Priority: 10})
	e.AddSkill(&Skill{ID: "mid", Priority: 5})

	want := []string{"high", "mid", "low"}
	for i, s := range e.Skills {
		if s.ID != want[i] {
			t.Errorf("skills[%d] = %s, want %s", i, s.ID, want[i])
		}
	}
}

func TestEntity_GetComboSkill(t *testing.T) {
	e := newTestEntity(1)
	combo := &Skill{ID: "steam"}
	combo.SetComboSet([]string{"water", "fire"})
	e.AddSkill(&Skill{ID: "fire"})
	e.AddSkill(combo)

	if got := e.GetComboSkill([]string{"fire", "water"}); got != combo {
		t.Errorf("GetComboSkill = %v, want steam", got)
	}
	if got := e.GetComboSkill([]string{"fire"}); got != nil {
		t.Errorf("GetComboSkill(fire) = %v, want nil", got.ID)
	}
}

func TestEntity_Run(t *testing.T) {
	t.Run("Full turn ticks effects, skills and AI", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		ai := &scriptedAI{}
		e.AI = ai
		e.AddSkill(&Skill{ID: "s", RoundsToGo: 2})
		eff := &testEffect{kind: "t", remaining: 150}
		e.AddEffect(ctx, eff)

		ctx.now = 100
		if res := e.Run(ctx); res != TurnEnded {
			t.Fatalf("Run = %v, want TurnEnded", res)
		}
		if ai.rounds != 1 {
			t.Errorf("AI rounds = %d, want 1", ai.rounds)
		}
		if e.Skills[0].RoundsToGo != 1 {
			t.Errorf("RoundsToGo = %d, want 1", e.Skills[0].RoundsToGo)
		}
		if eff.Duration() != 50 {
			t.Errorf("effect duration = %d, want 50", eff.Duration())
		}
		if e.Initiative != RoundLength {
			t.Errorf("initiative = %d, want %d", e.Initiative, RoundLength)
		}
		if e.Phase != PhaseResolved {
			t.Errorf("phase = %v", e.Phase)
		}

		ctx.now = 200
		e.Run(ctx)
		if len(e.Effects) != 0 || eff.removed != 1 {
			t.Errorf("expired effect must be removed once (removed=%d)", eff.removed)
		}
	})

	t.Run("Frozen entity skips AI", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		ai := &scriptedAI{}
		e.AI = ai
		e.Frozen = true
		e.Run(ctx)
		if ai.rounds != 0 {
			t.Error("frozen entity must not think")
		}
	})

	t.Run("Speed factor changes initiative cost", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		e.SpeedFactor = 2
		e.Run(ctx)
		if e.Initiative != RoundLength/2 {
			t.Errorf("initiative = %d, want %d", e.Initiative, RoundLength/2)
		}
	})

	t.Run("Player waiting for input keeps turn open", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		ai := &scriptedAI{request: true}
		e.AI = ai
		e.AddSkill(&Skill{ID: "s", RoundsToGo: 3})
		ctx.player = e

		if res := e.Run(ctx); res != TurnPending {
			t.Fatalf("Run = %v, want TurnPending", res)
		}
		if e.Phase != PhaseWaitingForUser || e.Initiative != 0 {
			t.Errorf("phase %v initiative %d", e.Phase, e.Initiative)
		}

		// Повторный вызов, пока диспетчер заблокирован - no-op
		e.Run(ctx)
		if ai.rounds != 1 || e.Skills[0].RoundsToGo != 2 {
			t.Errorf("blocked re-run must do nothing: rounds=%d rtg=%d", ai.rounds, e.Skills[0].RoundsToGo)
		}

		// Ввод пришёл: ход продолжается с AI, кулдауны не тикают второй раз
		ctx.waiting = false
		ai.request = false
		if res := e.Run(ctx); res != TurnEnded {
			t.Fatalf("Run after input = %v", res)
		}
		if ai.rounds != 2 || e.Skills[0].RoundsToGo != 2 {
			t.Errorf("resumed turn: rounds=%d rtg=%d", ai.rounds, e.Skills[0].RoundsToGo)
		}
	})

	t.Run("Panicking AI does not crash the tick", func(t *testing.T) {
		ctx := newStubCtx()
		e := newTestEntity(1)
		e.AI = &scriptedAI{panics: true}
		if res := e.Run(ctx); res != TurnEnded {
			t.Errorf("Run = %v, want TurnEnded", res)
		}
	})
}

func TestEntity_UpdateVisibility(t *testing.T) {
	ctx := newStubCtx()
	e := newTestEntity(1)
	e.Pos = Position{X: 2, Y: 2}

	ctx.world.RecomputeFieldOfView(2, 2, 3)
	e.UpdateVisibility(ctx)
	if !e.Visible {
		t.Fatal("entity in FOV must become visible")
	}

	ctx.world.RecomputeFieldOfView(9, 9, 1)
	ctx.now = VisibilityGrace - 1
	e.UpdateVisibility(ctx)
	if !e.Visible {
		t.Error("entity must stay visible during grace period")
	}

	ctx.now = VisibilityGrace
	e.UpdateVisibility(ctx)
	if e.Visible {
		t.Error("entity must fade out after grace period")
	}
	if len(ctx.fades) != 2 || ctx.fades[0] != TransitionFadeIn || ctx.fades[1] != TransitionFadeOut {
		t.Errorf("fades = %v", ctx.fades)
	}
}

func TestEntity_Blocks(t *testing.T) {
	e := newTestEntity(1)
	if !e.Blocks() {
		t.Error("living creature blocks")
	}
	e.AddTag(TagHazard)
	if e.Blocks() {
		t.Error("hazard does not block")
	}
	e.AddTag(TagSolid)
	if !e.Blocks() {
		t.Error("solid blocks")
	}
	e.Killed = true
	if e.Blocks() {
		t.Error("dead entity does not block")
	}
}
