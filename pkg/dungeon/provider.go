package dungeon

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/ai"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/utils"
)

// ExitTemplate - лестница на следующую глубину.
const ExitTemplate = "stairs_down"

// Provider генерирует локации по глубине (domain.AreaProvider).
// Сид глубины = мастер-сид + глубина, так что уровень всегда один и тот же.
type Provider struct {
	cfg     engine.Config
	catalog *Catalog
	log     *logrus.Entry
}

var _ domain.AreaProvider = (*Provider)(nil)

func NewProvider(cfg engine.Config, catalog *Catalog) *Provider {
	return &Provider{
		cfg:     cfg,
		catalog: catalog,
		log:     logger.For("dungeon"),
	}
}

func (p *Provider) LoadArea(depth int) (*domain.Area, error) {
	if depth < 1 {
		return nil, fmt.Errorf("bad depth %d", depth)
	}
	arena := p.cfg.Arena
	rng := utils.NewRNG(p.cfg.LevelSeed(depth))

	b := NewLevel(depth, rng).
		WithSize(arena.Width, arena.Height).
		WithRooms(arena.MaxRooms, arena.MinRoom, arena.MaxRoom)

	// Чем глубже, тем больше монстров
	for _, tpl := range p.known(arena.Monsters) {
		b.Spawn(tpl, arena.Monsters[tpl]+(depth-1)/2)
	}
	for _, tpl := range p.known(arena.Hazards) {
		b.Spawn(tpl, arena.Hazards[tpl])
	}
	if p.catalog.Has(ExitTemplate) {
		b.PlaceExit(ExitTemplate)
	}

	area := b.Build(fmt.Sprintf("depth-%d", depth))
	if spawner := p.spawner(); spawner != nil {
		area.AI = spawner
	}

	p.log.WithFields(logrus.Fields{
		"depth":      depth,
		"rooms":      len(b.Rooms()),
		"placements": len(area.Placements),
		"seed":       rng.Seed(),
	}).Info("Area generated")
	return area, nil
}

func (p *Provider) spawner() domain.AreaAI {
	sp := p.cfg.Spawner
	if sp.Chance <= 0 {
		return nil
	}
	table := make(map[string]int, len(sp.Table))
	for _, tpl := range p.known(sp.Table) {
		table[tpl] = sp.Table[tpl]
	}
	if len(table) == 0 {
		return nil
	}
	return ai.NewAreaSpawner(sp.Chance, sp.Cap, sp.MinRadius, sp.MaxRadius, sp.Attempts, table)
}

// known - шаблоны из таблицы, которые есть в каталоге, по алфавиту.
func (p *Provider) known(table map[string]int) []string {
	out := make([]string, 0, len(table))
	for tpl, n := range table {
		if n <= 0 {
			continue
		}
		if !p.catalog.Has(tpl) {
			p.log.WithField("template", tpl).Warn("Template missing in catalog, skipped")
			continue
		}
		out = append(out, tpl)
	}
	sort.Strings(out)
	return out
}
