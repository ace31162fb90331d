package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Использует алгоритм Брезенхэма (только целочисленная арифметика).
// Стартовая и конечная клетки не проверяются: в стену можно "смотреть".
func HasLineOfSight(w *domain.GameWorld, p1, p2 domain.Position) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"start_pos": p1,
		"end_pos":   p2,
	})

	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := p1.Sign(p2)

	err := dx - dy

	for {
		isStartPoint := x0 == p1.X && y0 == p1.Y
		isEndPoint := x0 == p2.X && y0 == p2.Y

		if !isStartPoint && !isEndPoint && w.IsOpaque(x0, y0) {
			losLogger.WithField("blocking_point", domain.Position{X: x0, Y: y0}).
				Debug("Line of sight blocked.")
			return false
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}
