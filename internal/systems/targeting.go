package systems

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Valid  bool
	Reason string // Причина отказа, если Valid == false
}

// ValidateTarget проверяет, может ли actor применить что-то к клетке (x, y).
//
// Параметры:
// - rangeLimit: максимальная дистанция по Чебышеву (1 - соседняя клетка). 0 - без ограничения.
// - needLOS: нужна ли прямая видимость.
func ValidateTarget(actor *domain.Entity, x, y, rangeLimit int, needLOS bool, w *domain.GameWorld) ValidationResult {
	target := domain.Position{X: x, Y: y}

	// 1. Клетка на карте
	if !w.IsValid(x, y) {
		return ValidationResult{Reason: "out of map"}
	}

	// 2. Проверка дистанции
	dist := actor.Pos.ChebyshevTo(target)
	if rangeLimit > 0 && dist > rangeLimit {
		return ValidationResult{Reason: "out of range"}
	}

	// 3. Проверка видимости (Line of Sight)
	if needLOS && dist > 0 && !HasLineOfSight(w, actor.Pos, target) {
		return ValidationResult{Reason: "no line of sight"}
	}

	return ValidationResult{Valid: true}
}

// NearestHostile - ближайший живой враг в радиусе (для автопилота и AI).
func NearestHostile(actor *domain.Entity, candidates []*domain.Entity, radius int) *domain.Entity {
	var best *domain.Entity
	bestDist := radius + 1
	for _, c := range candidates {
		if c.ID == actor.ID || !c.IsAlive() || c.Dressing || !actor.IsHostileTo(c) {
			continue
		}
		if d := actor.Pos.ChebyshevTo(c.Pos); d < bestDist || (d == bestDist && best != nil && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return best
}
