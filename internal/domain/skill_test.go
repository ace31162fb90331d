package domain

import "testing"

type countingBehaviour struct {
	ok    bool
	calls int
}

func (b *countingBehaviour) Apply(Context, SkillUse) bool {
	b.calls++
	return b.ok
}

func TestSkill_CooldownRoundTrip(t *testing.T) {
	ctx := newStubCtx()
	e := newTestEntity(1)
	s := &Skill{ID: "bolt", CoolDown: 3, Self: []Behaviour{&countingBehaviour{ok: true}}}
	e.AddSkill(s)

	if !s.OnSelf(ctx, e) {
		t.Fatal("first use must succeed")
	}
	if s.RoundsToGo != 3 {
		t.Fatalf("RoundsToGo = %d, want 3", s.RoundsToGo)
	}
	if s.OnSelf(ctx, e) {
		t.Error("skill on cooldown must fail")
	}

	for want := 2; want >= 0; want-- {
		e.Run(ctx)
		if s.RoundsToGo != want {
			t.Errorf("after turn RoundsToGo = %d, want %d", s.RoundsToGo, want)
		}
	}
	e.Run(ctx)
	if s.RoundsToGo != 0 {
		t.Errorf("RoundsToGo went negative: %d", s.RoundsToGo)
	}
}

func TestSkill_OnTargetRunsAllBehaviours(t *testing.T) {
	ctx := newStubCtx()
	actor := newTestEntity(1)
	target := newTestEntity(2)

	failing := &countingBehaviour{ok: false}
	working := &countingBehaviour{ok: true}
	s := &Skill{ID: "multi", CoolDown: 1, Target: []Behaviour{failing, working}}
	actor.AddSkill(s)

	if !s.OnTarget(ctx, actor, target) {
		t.Fatal("skill succeeds if any behaviour succeeds")
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.calls, working.calls)
	}

	t.Run("All failing leaves cooldown untouched", func(t *testing.T) {
		s2 := &Skill{ID: "dud", CoolDown: 4, Empty: []Behaviour{&countingBehaviour{}}}
		actor.AddSkill(s2)
		if s2.OnEmpty(ctx, actor, 1, 1) {
			t.Error("expected failure")
		}
		if s2.RoundsToGo != 0 {
			t.Errorf("RoundsToGo = %d", s2.RoundsToGo)
		}
	})
}

func TestSkill_ComboPropagatesCooldown(t *testing.T) {
	ctx := newStubCtx()
	e := newTestEntity(1)
	fire := &Skill{ID: "fire", CoolDown: 1, RoundsToGo: 0}
	water := &Skill{ID: "water", CoolDown: 2, RoundsToGo: 1}
	other := &Skill{ID: "other", CoolDown: 2}
	steam := &Skill{ID: "steam", CoolDown: 5, Self: []Behaviour{&countingBehaviour{ok: true}}}
	steam.SetComboSet([]string{"water", "fire"})
	for _, s := range []*Skill{fire, water, other, steam} {
		e.AddSkill(s)
	}

	if !steam.OnSelf(ctx, e) {
		t.Fatal("combo must succeed")
	}
	for _, s := range []*Skill{fire, water, steam} {
		if s.RoundsToGo != 5 {
			t.Errorf("%s RoundsToGo = %d, want 5", s.ID, s.RoundsToGo)
		}
	}
	if other.RoundsToGo != 0 {
		t.Errorf("unrelated skill touched: %d", other.RoundsToGo)
	}
}

func TestSkill_PanickingBehaviourCountsAsFailure(t *testing.T) {
	ctx := newStubCtx()
	e := newTestEntity(1)
	s := &Skill{ID: "bad", Self: []Behaviour{panicBehaviour{}}}
	e.AddSkill(s)
	if s.OnSelf(ctx, e) {
		t.Error("panicking behaviour must fail")
	}
}

type panicBehaviour struct{}

func (panicBehaviour) Apply(Context, SkillUse) bool { panic("oops") }
