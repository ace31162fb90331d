package dungeon

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

// Размеры по умолчанию
const (
	MapWidth  = 48
	MapHeight = 32
	MaxRooms  = 9
	MinSize   = 4
	MaxSize   = 9

	placeAttempts = 20
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

func createRoom(w *domain.GameWorld, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			w.SetTemplate(x, y, domain.FloorTemplate)
		}
	}
}

func createHCorridor(w *domain.GameWorld, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		w.SetTemplate(x, y, domain.FloorTemplate)
	}
}

func createVCorridor(w *domain.GameWorld, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		w.SetTemplate(x, y, domain.FloorTemplate)
	}
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Весь рандом идёт через rng уровня: один сид - одна и та же локация.
type LevelBuilder struct {
	depth      int
	width      int
	height     int
	rooms      []Rect
	world      *domain.GameWorld
	placements []domain.Placement
	occupied   map[domain.Position]bool
	rng        *utils.RNG
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, rng *utils.RNG) *LevelBuilder {
	return &LevelBuilder{
		depth:    depth,
		width:    MapWidth,
		height:   MapHeight,
		occupied: make(map[domain.Position]bool),
		rng:      rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	if width > 2 {
		b.width = width
	}
	if height > 2 {
		b.height = height
	}
	return b
}

// WithRooms генерирует комнаты и коридоры.
// Если не влезло хотя бы две комнаты - открытая арена во всю карту.
func (b *LevelBuilder) WithRooms(maxRooms, minSize, maxSize int) *LevelBuilder {
	// Инициализируем карту стенами
	b.world = domain.NewGameWorld(b.width, b.height, domain.WallTemplate)
	b.rooms = make([]Rect, 0, maxRooms)

	if minSize < 3 {
		minSize = 3
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	for i := 0; i < maxRooms && b.width-maxSize-1 > 1 && b.height-maxSize-1 > 1; i++ {
		w := b.rng.Range(minSize, maxSize)
		h := b.rng.Range(minSize, maxSize)
		x := b.rng.Range(1, b.width-w-1)
		y := b.rng.Range(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.world, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.world, prevX, currX, prevY)
				createVCorridor(b.world, prevY, currY, currX)
			} else {
				createVCorridor(b.world, prevY, currY, prevX)
				createHCorridor(b.world, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	if len(b.rooms) < 2 {
		b.openArena()
	}

	b.occupied[b.StartPos()] = true
	return b
}

// openArena - одна большая комната со стенами по периметру.
func (b *LevelBuilder) openArena() {
	b.world = domain.NewGameWorld(b.width, b.height, domain.WallTemplate)
	arena := Rect{X: 0, Y: 0, W: b.width - 1, H: b.height - 1}
	createRoom(b.world, arena)
	b.rooms = []Rect{arena}
}

// Spawn ставит count сущностей шаблона в случайные комнаты (кроме стартовой, если есть другие).
func (b *LevelBuilder) Spawn(templateID string, count int) *LevelBuilder {
	candidates := b.rooms
	if len(candidates) > 1 {
		candidates = candidates[1:]
	}
	if len(candidates) == 0 {
		return b
	}

	for i := 0; i < count; i++ {
		room := candidates[b.rng.Intn(len(candidates))]
		pos, ok := b.freeCell(room)
		if !ok {
			continue // Пропускаем, если не нашли место
		}
		b.place(templateID, pos)
	}
	return b
}

// PlaceExit размещает лестницу в последней комнате
func (b *LevelBuilder) PlaceExit(templateID string) *LevelBuilder {
	if len(b.rooms) == 0 {
		return b
	}
	room := b.rooms[len(b.rooms)-1]
	cx, cy := room.Center()
	pos := domain.Position{X: cx, Y: cy}
	if b.occupied[pos] {
		// Арена из одной комнаты: лестница в дальнем углу
		pos = domain.Position{X: room.X + room.W - 1, Y: room.Y + room.H - 1}
	}
	b.place(templateID, pos)
	return b
}

func (b *LevelBuilder) freeCell(room Rect) (domain.Position, bool) {
	for attempt := 0; attempt < placeAttempts; attempt++ {
		pos := domain.Position{
			X: room.X + 1 + b.rng.Intn(room.W-1),
			Y: room.Y + 1 + b.rng.Intn(room.H-1),
		}
		if b.world.IsWalkable(pos.X, pos.Y) && !b.occupied[pos] {
			return pos, true
		}
	}
	return domain.Position{}, false
}

func (b *LevelBuilder) place(templateID string, pos domain.Position) {
	b.occupied[pos] = true
	b.placements = append(b.placements, domain.Placement{TemplateID: templateID, Pos: pos})
}

// StartPos возвращает стартовую позицию (центр первой комнаты)
func (b *LevelBuilder) StartPos() domain.Position {
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		return domain.Position{X: cx, Y: cy}
	}
	return domain.Position{X: b.width / 2, Y: b.height / 2}
}

func (b *LevelBuilder) Rooms() []Rect { return b.rooms }

// Build собирает готовую локацию
func (b *LevelBuilder) Build(id string) *domain.Area {
	if b.world == nil {
		b.openArena()
	}
	return &domain.Area{
		ID:          id,
		Depth:       b.depth,
		World:       b.world,
		Placements:  b.placements,
		PlayerStart: b.StartPos(),
	}
}
