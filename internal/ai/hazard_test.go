package ai

import (
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// exhaustedFactory - фабрика отказывает после limit созданий, лог пишется в хук.
type exhaustedFactory struct {
	domain.Context
	limit int
	log   *logrus.Entry
}

func (c *exhaustedFactory) CreateEntity(tpl string, x, y int) *domain.Entity {
	if c.limit == 0 {
		return nil
	}
	c.limit--
	return c.Context.CreateEntity(tpl, x, y)
}

func (c *exhaustedFactory) Log() *logrus.Entry { return c.log }

func lavaOf(e *domain.Entity) *HazardLava {
	l, _ := e.AI.(*HazardLava)
	return l
}

func TestLavaSpreadsToThreeChildren(t *testing.T) {
	sim, _ := newTestSim(t, 11, 11)
	lava := mustCreate(t, sim, "lava", 5, 5)

	_ = lava.AI.OnRound(sim, lava) // первый раунд пропускается
	if n := len(sim.Entities()); n != 1 {
		t.Fatalf("spread on first round: %d entities", n)
	}
	_ = lava.AI.OnRound(sim, lava)

	var children []*domain.Entity
	for _, e := range sim.Entities() {
		if e != lava {
			children = append(children, e)
		}
	}
	if len(children) != 3 {
		t.Fatalf("children = %d, want 3", len(children))
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Initiative < children[j].Initiative })
	for i, c := range children {
		if g := lavaOf(c).Generation; g != 2 {
			t.Errorf("child %d generation = %d, want 2", i, g)
		}
		if !lava.Pos.IsAdjacent(c.Pos) {
			t.Errorf("child %d at %v, not adjacent", i, c.Pos)
		}
		if want := (i + 1) * 25; c.Initiative != want {
			t.Errorf("child %d initiative = %d, want %d", i, c.Initiative, want)
		}
	}
	if lavaOf(lava).State() != LavaSpawning {
		t.Errorf("state = %s, want spawning", lavaOf(lava).State())
	}

	// Второй раз не растекается
	_ = lava.AI.OnRound(sim, lava)
	if n := len(sim.Entities()); n != 4 {
		t.Errorf("entities = %d after repeat round, want 4", n)
	}
}

func TestLavaMaxGenerationDoesNotSpread(t *testing.T) {
	sim, _ := newTestSim(t, 5, 5)
	lava := mustCreate(t, sim, "lava", 2, 2)
	lavaOf(lava).Generation = 3

	_ = lava.AI.OnRound(sim, lava)
	_ = lava.AI.OnRound(sim, lava)
	if n := len(sim.Entities()); n != 1 {
		t.Errorf("last generation spread: %d entities", n)
	}
}

func TestLavaContact(t *testing.T) {
	sim, _ := newTestSim(t, 5, 5)
	gob := mustCreate(t, sim, "goblin", 1, 1)
	bat := mustCreate(t, sim, "bat", 2, 2)
	bones := mustCreate(t, sim, "bones", 3, 3)

	mustCreate(t, sim, "lava", 1, 1)
	mustCreate(t, sim, "lava", 2, 2)
	mustCreate(t, sim, "lava", 3, 3)

	if gob.Health() != 2 {
		t.Errorf("goblin health = %d, want 2", gob.Health())
	}
	if bat.Health() != 5 {
		t.Errorf("flying bat burned: health %d", bat.Health())
	}
	if sim.Entity(bones.ID) != nil || !bones.Removed {
		t.Error("dressing under lava must be destroyed")
	}
}

func TestLavaHardens(t *testing.T) {
	sim, _ := newTestSim(t, 1, 1)
	lava := mustCreate(t, sim, "lava", 0, 0)

	runUntil(t, sim, func() bool { return lava.HasTag(domain.TagHardened) })

	if lava.HasTag(domain.TagHazard) {
		t.Error("hardened lava keeps hazard tag")
	}
	if !lava.Dressing || !lava.Static {
		t.Error("hardened lava must be static scenery")
	}
	if lava.AI.Kind() != KindInert {
		t.Errorf("AI = %s, want inert", lava.AI.Kind())
	}
	if lava.Initiative < 300 {
		t.Errorf("hardened too early at %d", lava.Initiative)
	}
	_ = sim.DoLogic(100000)
	if sim.Events().HasActor(lava) {
		t.Error("hardened lava still in turn queue")
	}
}

func TestEmitterCycle(t *testing.T) {
	sim, _ := newTestSim(t, 1, 1)
	vent := mustCreate(t, sim, "vent", 0, 0)
	em := vent.AI.(*HazardLavaEmitter)

	runUntil(t, sim, func() bool { return em.State() == EmitterActive })
	if vent.Initiative < 200 {
		t.Errorf("opened at %d, want >= 200", vent.Initiative)
	}
	var lava *domain.Entity
	for _, e := range sim.EntitiesAt(0, 0) {
		if e.TemplateID == "lava" {
			lava = e
		}
	}
	if lava == nil {
		t.Fatal("open emitter produced no lava")
	}
	if g := lavaOf(lava).Generation; g != 1 {
		t.Errorf("emitted lava generation = %d, want 1", g)
	}
	if vent.Removed || vent.Health() != 1 {
		t.Error("lava must not burn its emitter")
	}

	runUntil(t, sim, func() bool { return em.State() == EmitterIdle })
	if vent.Initiative < 400 {
		t.Errorf("closed at %d, want >= 400", vent.Initiative)
	}
}

func TestLavaSpreadLogsPartialChildren(t *testing.T) {
	sim, _ := newTestSim(t, 11, 11)
	lava := mustCreate(t, sim, "lava", 5, 5)

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	ctx := &exhaustedFactory{Context: sim, limit: 1, log: logrus.NewEntry(log)}

	lavaOf(lava).spread(ctx, lava)

	if n := len(sim.Entities()); n != 2 {
		t.Fatalf("entities = %d, want lava + 1 child", n)
	}
	var spread *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "Lava spread" {
			spread = e
		}
	}
	if spread == nil {
		t.Fatal("spread not logged when the factory ran out")
	}
	if got := spread.Data["children"]; got != 1 {
		t.Errorf("logged children = %v, want 1", got)
	}
}
