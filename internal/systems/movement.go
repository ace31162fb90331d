package systems

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Occupancy - поиск сущностей по клетке (чтобы не зависеть от Simulator напрямую)
type Occupancy interface {
	EntitiesAt(x, y int) []*domain.Entity
}

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	BlockedBy  *domain.Entity // Если врезались в кого-то (для атаки)
	Hazard     *domain.Entity // Активная опасность, куда нельзя без полёта
	Exit       *domain.Entity // Выход с уровня в целевой клетке
	IsWall     bool           // Если врезались в стену
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(e *domain.Entity, dx, dy int, w *domain.GameWorld, occ Occupancy) MovementResult {
	targetPos := e.Pos.Shift(dx, dy)

	res := MovementResult{NewX: targetPos.X, NewY: targetPos.Y}

	// 1. Границы и стены
	if !w.IsWalkable(targetPos.X, targetPos.Y) {
		res.IsWall = true
		return res
	}

	// 2. Проверка сущностей
	for _, other := range occ.EntitiesAt(targetPos.X, targetPos.Y) {
		// Игнорируем самого себя и мертвых
		if other.ID == e.ID || !other.IsAlive() {
			continue
		}

		if other.Blocks() {
			res.BlockedBy = other
			return res
		}
		// На активную лаву заходят только летающие
		if other.HasTag(domain.TagHazard) && !e.HasTag(domain.TagFlying) {
			res.Hazard = other
			return res
		}
		if other.HasTag(domain.TagExit) {
			res.Exit = other
		}
	}

	res.HasMoved = true
	return res
}

// IsCellFree - клетка проходима и в ней нет живых сущностей, кроме декораций.
func IsCellFree(w *domain.GameWorld, occ Occupancy, x, y int) bool {
	if !w.IsWalkable(x, y) {
		return false
	}
	for _, other := range occ.EntitiesAt(x, y) {
		if other.IsAlive() && !other.Dressing {
			return false
		}
	}
	return true
}

// RandomAdjacent возвращает случайное соседнее смещение.
func RandomAdjacent(intn func(n int) int) (int, int) {
	d := domain.Neighbours[intn(len(domain.Neighbours))]
	return d.X, d.Y
}
