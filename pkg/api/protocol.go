package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	TypeUpdate   = "UPDATE"
	TypeGameOver = "GAME_OVER"
	TypeError    = "ERROR"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Снимок мира глазами игрока + визуальные подсказки, накопленные с прошлого снимка.
type ServerResponse struct {
	// Type - UPDATE, GAME_OVER или ERROR.
	Type string `json:"type"`

	// Tick текущая инициатива симуляции (часы раундов).
	Tick int `json:"tick"`

	// Turn - сколько ходов сущностей разрешено с начала сессии.
	Turn int64 `json:"turn"`

	// HostTime - часы хоста в мс, по ним клиент синхронизирует анимации.
	HostTime int64 `json:"hostTime"`

	Depth int `json:"depth"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// WaitingForInput true, если симуляция стоит и ждёт команду игрока.
	// Только в этом состоянии команда будет исполнена на этом ходу.
	WaitingForInput bool `json:"waitingForInput"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities срез всех видимых сущностей.
	Entities []EntityView `json:"entities,omitempty"`

	// Cues - анимации, частицы и звуки с прошлого снимка.
	Cues []CueView `json:"cues,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого хода.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error - текст ошибки для Type == ERROR.
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol - визуальное представление тайла (e.g. "#" для стены).
	Symbol string `json:"symbol"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	IsExplored bool `json:"isExplored"`
}

// Position - клетка сетки.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID       string   `json:"id"`
	Template string   `json:"template"`
	Name     string   `json:"name"`
	Faction  string   `json:"faction"`
	Pos      Position `json:"pos"`

	// Sprite и Animation - что рисовать и какую анимацию проигрывать сейчас.
	Sprite    string `json:"sprite,omitempty"`
	Animation string `json:"animation,omitempty"`

	Tags    []string `json:"tags,omitempty"`
	Effects []string `json:"effects,omitempty"`

	Stats *StatsView `json:"stats,omitempty"`

	// Skills только для сущности клиента.
	Skills []SkillView `json:"skills,omitempty"`
}

// StatsView это DTO для характеристик сущности.
type StatsView struct {
	HP         int  `json:"hp"`
	MaxHP      int  `json:"maxHp"`
	Initiative int  `json:"initiative"`
	IsDead     bool `json:"isDead"`
}

// SkillView - умение и его перезарядка.
type SkillView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Range      int      `json:"range"`
	RoundsToGo int      `json:"roundsToGo"`
	Combo      []string `json:"combo,omitempty"`
}

// CueView - одна визуальная или звуковая подсказка для клиента.
type CueView struct {
	Kind     string `json:"kind"` // animation, transition, particle, particle_remove, sound, release
	Name     string `json:"name,omitempty"`
	EntityID string `json:"entityId,omitempty"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	At       int64  `json:"at"` // время хоста в мс
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token - токен сессии, выданный при подключении. Для справки в логах.
	Token string `json:"token,omitempty"`

	// Action название действия: WAIT, MOVE, ATTACK, SKILL, CLICK.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// EntityPayload используется для ATTACK.
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// PositionPayload используется для CLICK.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SkillPayload - одно умение или комбинация, плюс целевая клетка.
type SkillPayload struct {
	Skills []string `json:"skills"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
}
