package domain

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// RecomputeFieldOfView сбрасывает InLineOfSight и заново считает видимость
// рекурсивным shadowcasting. Видимые клетки помечаются Explored.
// Возвращает количество видимых клеток.
func (w *GameWorld) RecomputeFieldOfView(ox, oy, radius int) int {
	for i := range w.Tiles {
		w.Tiles[i].InLineOfSight = false
	}
	if radius <= 0 || !w.IsValid(ox, oy) {
		return 0
	}

	count := 0
	mark := func(x, y int) {
		t := &w.Tiles[w.GetIndex(x, y)]
		if !t.InLineOfSight {
			count++
		}
		t.InLineOfSight = true
		t.Explored = true
	}

	// Центр всегда виден
	mark(ox, oy)

	for i := 0; i < 8; i++ {
		w.castLight(ox, oy, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], mark)
	}
	return count
}

func (w *GameWorld) castLight(cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, mark func(x, y int)) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if w.IsValid(X, Y) && float64(dx*dx+dy*dy) < radiusSq {
				mark(X, Y)
			}

			if blocked {
				if w.IsOpaque(X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if w.IsOpaque(X, Y) && j < radius {
				blocked = true
				w.castLight(cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, mark)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
