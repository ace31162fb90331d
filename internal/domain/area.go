package domain

// Placement - сущность, которую надо создать при загрузке локации.
type Placement struct {
	TemplateID string   `json:"template" yaml:"template"`
	Pos        Position `json:"pos" yaml:"pos"`
}

// Area - загруженная локация: карта, AI уровня и начальная расстановка.
type Area struct {
	ID          string
	Depth       int
	World       *GameWorld
	AI          AreaAI
	Placements  []Placement
	PlayerStart Position
}
