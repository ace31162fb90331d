package systems

import (
	"testing"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

func TestResolveAttack(t *testing.T) {
	attacker := newEntity(1, domain.FactionPlayer, 0, 0)
	target := newEntity(2, domain.FactionMonster, 1, 0)

	tests := []struct {
		name   string
		attack int
		armor  int
		want   int
	}{
		{"No stats hits for 1", 0, 0, 1},
		{"Attack minus armor", 5, 2, 3},
		{"Armor never reduces below 1", 2, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker.Vars[domain.VarAttack] = tt.attack
			target.Vars[domain.VarArmor] = tt.armor
			res := ResolveAttack(attacker, target)
			if res.Damage != tt.want {
				t.Errorf("damage = %d, want %d", res.Damage, tt.want)
			}
			if res.Type != domain.DamagePhysical {
				t.Errorf("type = %q", res.Type)
			}
		})
	}
}
