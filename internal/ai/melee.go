package ai

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/systems"
)

// Melee преследует игрока и бьёт в упор.
// За раунд - не больше одной команды движения.
type Melee struct {
	base
	// SightRadius > 0 - игрок должен быть в радиусе и в прямой видимости.
	SightRadius int
}

func (*Melee) Kind() string       { return KindMelee }
func (m *Melee) Clone() domain.AI { c := *m; return &c }

func (m *Melee) OnRound(ctx domain.Context, self *domain.Entity) error {
	player := ctx.Player()
	if player == nil || !player.IsAlive() || player == self {
		return nil
	}
	if m.SightRadius > 0 {
		if self.Pos.ChebyshevTo(player.Pos) > m.SightRadius ||
			!systems.HasLineOfSight(ctx.World(), self.Pos, player.Pos) {
			return nil
		}
	}

	// 1-3. Прямой шаг и обходные направления
	for _, step := range systems.ChaseSteps(self.Pos, player.Pos) {
		if ctx.CanShift(self, step.X, step.Y) {
			ctx.Shift(self, step.X, step.Y)
			return nil
		}
	}

	// 4. Всё занято - одна попытка в случайную сторону
	dx, dy := systems.RandomAdjacent(ctx.RNG().Intn)
	ctx.Shift(self, dx, dy)
	return nil
}
