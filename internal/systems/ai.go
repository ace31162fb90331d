package systems

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// ChaseSteps возвращает смещения для преследования цели в порядке приоритета:
//  1. Идеальный путь (диагональ или прямая)
//  2. Smart Sliding: сначала по оси с большей разницей, потом по другой
//  3. Если одна ось нулевая - обход угла со сдвигом ±1 по ней
//
// Ничего не проверяет, проверку делает вызывающий через CanShift.
func ChaseSteps(from, to domain.Position) []domain.Position {
	dxRaw := to.X - from.X
	dyRaw := to.Y - from.Y
	stepX, stepY := from.Sign(to)

	if stepX == 0 && stepY == 0 {
		return nil
	}

	steps := make([]domain.Position, 0, 4)
	add := func(dx, dy int) {
		p := domain.Position{X: dx, Y: dy}
		if dx == 0 && dy == 0 {
			return
		}
		for _, s := range steps {
			if s == p {
				return
			}
		}
		steps = append(steps, p)
	}

	// Попытка 1: Идеальный путь
	add(stepX, stepY)

	// Попытка 2: выбор приоритетной оси
	tryXFirst := abs(dxRaw) > abs(dyRaw)
	if tryXFirst {
		add(stepX, 0)
		add(0, stepY)
	} else {
		add(0, stepY)
		add(stepX, 0)
	}

	// Попытка 3: цель на одной линии, обходим препятствие по диагонали
	switch {
	case stepY == 0:
		add(stepX, 1)
		add(stepX, -1)
	case stepX == 0:
		add(1, stepY)
		add(-1, stepY)
	}

	return steps
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
