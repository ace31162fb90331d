package ai

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// AreaSpawner - AI уровня: раз в раунд с шансом Chance подбрасывает монстра
// в свободную клетку кольца [MinRadius, MaxRadius] вокруг игрока.
type AreaSpawner struct {
	Chance    float64
	Cap       int // максимум живых монстров на уровне
	MinRadius int
	MaxRadius int
	Attempts  int

	templates []string
	weights   []int
}

// NewAreaSpawner. table: шаблон -> вес.
func NewAreaSpawner(chance float64, limit, minRadius, maxRadius, attempts int, table map[string]int) *AreaSpawner {
	s := &AreaSpawner{
		Chance:    chance,
		Cap:       limit,
		MinRadius: minRadius,
		MaxRadius: maxRadius,
		Attempts:  attempts,
	}
	// Порядок ключей фиксирован, иначе выбор по весам не воспроизводится
	for tpl := range table {
		s.templates = append(s.templates, tpl)
	}
	sort.Strings(s.templates)
	for _, tpl := range s.templates {
		s.weights = append(s.weights, table[tpl])
	}
	if s.Attempts <= 0 {
		s.Attempts = 8
	}
	if s.MaxRadius < s.MinRadius {
		s.MaxRadius = s.MinRadius
	}
	return s
}

func (*AreaSpawner) Kind() string { return KindAreaSpawner }

func (s *AreaSpawner) OnRound(ctx domain.Context, area *domain.Area) error {
	player := ctx.Player()
	if player == nil || !player.IsAlive() || len(s.templates) == 0 {
		return nil
	}
	rng := ctx.RNG()
	if !rng.Chance(s.Chance) {
		return nil
	}
	if s.Cap > 0 && countMonsters(ctx) >= s.Cap {
		return nil
	}

	idx := rng.WeightedSelect(s.weights)
	if idx < 0 {
		return nil
	}
	tpl := s.templates[idx]

	for i := 0; i < s.Attempts; i++ {
		p := player.Pos.Shift(
			rng.Range(-s.MaxRadius, s.MaxRadius),
			rng.Range(-s.MaxRadius, s.MaxRadius),
		)
		if d := player.Pos.ChebyshevTo(p); d < s.MinRadius || d > s.MaxRadius {
			continue
		}
		if !ctx.IsFree(p.X, p.Y) {
			continue
		}
		if e := ctx.CreateEntity(tpl, p.X, p.Y); e != nil {
			ctx.Log().WithFields(logrus.Fields{
				"area":      area.ID,
				"template":  tpl,
				"entity_id": e.ID,
				"pos":       p,
			}).Debug("Area spawner produced a monster")
		}
		return nil
	}
	return nil
}

func countMonsters(ctx domain.Context) int {
	n := 0
	for _, e := range ctx.Entities() {
		if e.IsAlive() && !e.Dressing && e.Faction == domain.FactionMonster {
			n++
		}
	}
	return n
}
