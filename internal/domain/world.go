package domain

// TileTemplate - неизменяемое описание типа клетки, общее для всех клеток этого типа.
type TileTemplate struct {
	ID       string `json:"id" yaml:"id"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Walkable bool   `json:"walkable" yaml:"walkable"`
	Solid    bool   `json:"solid" yaml:"solid"` // непрозрачная
}

// DefaultTileTemplate возвращается для клеток за пределами карты.
var DefaultTileTemplate = &TileTemplate{ID: "void", Symbol: " ", Walkable: false, Solid: true}

var (
	FloorTemplate = &TileTemplate{ID: "floor", Symbol: ".", Walkable: true}
	WallTemplate  = &TileTemplate{ID: "wall", Symbol: "#", Solid: true}
)

type Tile struct {
	Template      *TileTemplate `json:"-"`
	InLineOfSight bool          `json:"inLineOfSight"`
	Explored      bool          `json:"explored"`
}

type GameWorld struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"-"`

	// SpatialHash: Индекс позиции -> Список сущностей
	// Ключ: Y * Width + X
	SpatialHash map[int][]EntityID `json:"-"`
}

// MapProvider - то, что ядро спрашивает у карты.
type MapProvider interface {
	IsValid(x, y int) bool
	IsWalkable(x, y int) bool
	InLineOfSight(x, y int) bool
	RecomputeFieldOfView(ox, oy, radius int) int
}

var _ MapProvider = (*GameWorld)(nil)

// NewGameWorld создает карту, заполненную одним шаблоном.
func NewGameWorld(width, height int, fill *TileTemplate) *GameWorld {
	if fill == nil {
		fill = FloorTemplate
	}
	w := &GameWorld{
		Width:       width,
		Height:      height,
		Tiles:       make([]Tile, width*height),
		SpatialHash: make(map[int][]EntityID),
	}
	for i := range w.Tiles {
		w.Tiles[i].Template = fill
	}
	return w
}

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

func (w *GameWorld) IsValid(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// IsWalkable проверяет только тайл. Сущности проверяет симулятор.
func (w *GameWorld) IsWalkable(x, y int) bool {
	return w.IsValid(x, y) && w.Tiles[w.GetIndex(x, y)].Template.Walkable
}

func (w *GameWorld) InLineOfSight(x, y int) bool {
	return w.IsValid(x, y) && w.Tiles[w.GetIndex(x, y)].InLineOfSight
}

// IsOpaque - блокирует ли клетка взгляд. За картой всё непрозрачно.
func (w *GameWorld) IsOpaque(x, y int) bool {
	if !w.IsValid(x, y) {
		return true
	}
	return w.Tiles[w.GetIndex(x, y)].Template.Solid
}

// TileAt никогда не паникует: за пределами карты отдаёт клетку с DefaultTileTemplate.
func (w *GameWorld) TileAt(x, y int) Tile {
	if !w.IsValid(x, y) {
		return Tile{Template: DefaultTileTemplate}
	}
	return w.Tiles[w.GetIndex(x, y)]
}

func (w *GameWorld) SetTemplate(x, y int, t *TileTemplate) {
	if !w.IsValid(x, y) || t == nil {
		return
	}
	w.Tiles[w.GetIndex(x, y)].Template = t
}

// --- Пространственный индекс ---

// EntitiesAt возвращает список сущностей в конкретной клетке (быстро!)
func (w *GameWorld) EntitiesAt(x, y int) []EntityID {
	if !w.IsValid(x, y) {
		return nil
	}
	return w.SpatialHash[w.GetIndex(x, y)]
}

// PlaceEntity добавляет сущность в индекс
func (w *GameWorld) PlaceEntity(id EntityID, pos Position) {
	if !w.IsValid(pos.X, pos.Y) {
		return
	}
	idx := w.GetIndex(pos.X, pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], id)
}

// RemoveEntity удаляет сущность из индекса (смерть, телепорт)
func (w *GameWorld) RemoveEntity(id EntityID, pos Position) {
	if !w.IsValid(pos.X, pos.Y) {
		return
	}
	idx := w.GetIndex(pos.X, pos.Y)
	entities := w.SpatialHash[idx]
	for i, other := range entities {
		if other == id {
			// порядок внутри клетки важен для детерминизма, поэтому без swap
			w.SpatialHash[idx] = append(entities[:i], entities[i+1:]...)
			if len(w.SpatialHash[idx]) == 0 {
				delete(w.SpatialHash, idx)
			}
			return
		}
	}
}

// MoveEntity перемещает сущность в индексе
func (w *GameWorld) MoveEntity(id EntityID, from, to Position) bool {
	if !w.IsValid(to.X, to.Y) {
		return false
	}
	w.RemoveEntity(id, from)
	w.PlaceEntity(id, to)
	return true
}
