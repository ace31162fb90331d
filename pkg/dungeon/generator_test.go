package dungeon

import (
	"testing"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

func TestNewLevel(t *testing.T) {
	area := NewLevel(1, utils.NewRNG(3)).
		WithSize(MapWidth, MapHeight).
		WithRooms(MaxRooms, MinSize, MaxSize).
		Spawn("goblin", 5).
		PlaceExit(ExitTemplate).
		Build("test")

	// 1. Проверка размеров мира
	if area.World.Width != MapWidth || area.World.Height != MapHeight {
		t.Errorf("Expected map size %dx%d, got %dx%d", MapWidth, MapHeight, area.World.Width, area.World.Height)
	}

	// 2. Игрок не должен появиться в стене
	start := area.PlayerStart
	if !area.World.IsWalkable(start.X, start.Y) {
		t.Errorf("Start position %v is inside a wall!", start)
	}

	// 3. Расстановка: на полу, без наложений, со стартом не совпадает
	seen := map[domain.Position]bool{start: true}
	hasExit := false
	for _, p := range area.Placements {
		if !area.World.IsWalkable(p.Pos.X, p.Pos.Y) {
			t.Errorf("%s placed in a wall at %v", p.TemplateID, p.Pos)
		}
		if seen[p.Pos] {
			t.Errorf("%s placed on an occupied cell %v", p.TemplateID, p.Pos)
		}
		seen[p.Pos] = true
		if p.TemplateID == ExitTemplate {
			hasExit = true
		}
	}
	if !hasExit {
		t.Error("Level exit not found among placements")
	}
}

func TestNewLevelTooSmallFallsBackToArena(t *testing.T) {
	area := NewLevel(1, utils.NewRNG(1)).
		WithSize(8, 6).
		WithRooms(5, 4, 9).
		PlaceExit(ExitTemplate).
		Build("tiny")

	if !area.World.IsWalkable(1, 1) || area.World.IsWalkable(0, 0) {
		t.Error("open arena must have a floor inside walls")
	}
	if len(area.Placements) != 1 || area.Placements[0].Pos == area.PlayerStart {
		t.Errorf("exit placement %+v, start %v", area.Placements, area.PlayerStart)
	}
}

// Тест вспомогательной функции пересечения комнат
func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}
	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}

func TestProviderIsDeterministic(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	cfg := engine.NewConfig()
	cfg.Seed = 1234

	a1, err := NewProvider(cfg, cat).LoadArea(2)
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := NewProvider(cfg, cat).LoadArea(2)
	if a1.PlayerStart != a2.PlayerStart || len(a1.Placements) != len(a2.Placements) {
		t.Fatal("same seed and depth produced different areas")
	}
	for i := range a1.Placements {
		if a1.Placements[i] != a2.Placements[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a1.Placements[i], a2.Placements[i])
		}
	}
	if a1.ID != "depth-2" || a1.Depth != 2 {
		t.Errorf("area id=%s depth=%d", a1.ID, a1.Depth)
	}
	if a1.AI == nil {
		t.Error("area spawner not attached")
	}

	if _, err := NewProvider(cfg, cat).LoadArea(0); err == nil {
		t.Error("depth 0 accepted")
	}
}

func TestProviderSkipsUnknownTemplates(t *testing.T) {
	cat, _ := DefaultCatalog()
	cfg := engine.NewConfig()
	cfg.Arena.Monsters = map[string]int{"dragon": 3}
	cfg.Arena.Hazards = nil
	cfg.Spawner.Table = map[string]int{"dragon": 1}

	area, err := NewProvider(cfg, cat).LoadArea(1)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range area.Placements {
		if p.TemplateID == "dragon" {
			t.Error("unknown template placed")
		}
	}
	if area.AI != nil {
		t.Error("spawner without known templates must be dropped")
	}
}

// Полный цикл: каталог + провайдер + симулятор.
func TestProviderLoadsIntoSimulator(t *testing.T) {
	cat, _ := DefaultCatalog()
	cfg := engine.NewConfig()
	cfg.Seed = 99
	prov := NewProvider(cfg, cat)
	sim := engine.NewSimulator(cfg, cat, engine.Collaborators{Areas: prov})

	if err := sim.LoadDepth(1); err != nil {
		t.Fatal(err)
	}
	hero := sim.SpawnPlayer(cfg.PlayerTemplate)
	if hero == nil {
		t.Fatal("player template missing")
	}
	if hero.Pos != sim.Area().PlayerStart {
		t.Errorf("hero at %v, want %v", hero.Pos, sim.Area().PlayerStart)
	}
	if len(sim.Entities()) < 2 {
		t.Errorf("only %d entities in the area", len(sim.Entities()))
	}
	if hero.GetComboSkill([]string{"ice", "fire"}) == nil {
		t.Error("combo skill not available to the player")
	}
}
