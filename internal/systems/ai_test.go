package systems

import (
	"testing"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

func TestChaseSteps(t *testing.T) {
	p := func(x, y int) domain.Position { return domain.Position{X: x, Y: y} }

	tests := []struct {
		name     string
		from, to domain.Position
		want     []domain.Position
	}{
		{"Diagonal, X dominant", p(0, 0), p(5, 2), []domain.Position{p(1, 1), p(1, 0), p(0, 1)}},
		{"Diagonal, Y dominant", p(0, 0), p(1, 4), []domain.Position{p(1, 1), p(0, 1), p(1, 0)}},
		{"Same row", p(5, 5), p(2, 5), []domain.Position{p(-1, 0), p(-1, 1), p(-1, -1)}},
		{"Same column", p(5, 5), p(5, 8), []domain.Position{p(0, 1), p(1, 1), p(-1, 1)}},
		{"Already there", p(3, 3), p(3, 3), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChaseSteps(tt.from, tt.to)
			if len(got) != len(tt.want) {
				t.Fatalf("ChaseSteps = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNearestHostile(t *testing.T) {
	hero := newEntity(1, domain.FactionPlayer, 0, 0)
	far := newEntity(2, domain.FactionMonster, 5, 5)
	near := newEntity(3, domain.FactionMonster, 2, 1)
	friend := newEntity(4, domain.FactionPlayer, 1, 0)
	dead := newEntity(5, domain.FactionMonster, 1, 1)
	dead.Killed = true

	got := NearestHostile(hero, []*domain.Entity{far, near, friend, dead}, 8)
	if got != near {
		t.Errorf("NearestHostile = %v, want %v", got, near.ID)
	}
	if NearestHostile(hero, []*domain.Entity{far}, 3) != nil {
		t.Error("target beyond radius must be ignored")
	}
}

func TestValidateTarget(t *testing.T) {
	w := createTestWorld(6, 6)
	w.SetTemplate(2, 0, domain.WallTemplate)
	actor := newEntity(1, domain.FactionPlayer, 0, 0)

	if res := ValidateTarget(actor, 4, 0, 3, false, w); res.Valid {
		t.Error("expected out of range")
	}
	if res := ValidateTarget(actor, 3, 0, 5, true, w); res.Valid {
		t.Error("expected wall to block line of sight")
	}
	if res := ValidateTarget(actor, 3, 0, 5, false, w); !res.Valid {
		t.Errorf("expected valid, got %s", res.Reason)
	}
	if res := ValidateTarget(actor, -1, 0, 0, false, w); res.Valid {
		t.Error("expected out of map")
	}
}
