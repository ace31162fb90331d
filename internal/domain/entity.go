package domain

import (
	"math"
	"slices"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

type Entity struct {
	// Идентификация
	ID         EntityID `json:"id"`
	TemplateID string   `json:"template"`
	Name       string   `json:"name"`
	Sprite     string   `json:"sprite,omitempty"`

	Pos     Position           `json:"pos"`
	Faction string             `json:"faction"`
	Tags    mapset.Set[string] `json:"-"`

	// Время
	Initiative  int       `json:"initiative"`
	SpeedFactor float64   `json:"speedFactor"`
	Phase       TurnPhase `json:"-"`

	// Флаги
	Frozen   bool `json:"frozen"`
	Static   bool `json:"static"`
	Dressing bool `json:"dressing"` // декорация, ход не получает
	Visible  bool `json:"visible"`

	LastSeenInitiative int `json:"-"`

	Effects []Effect       `json:"-"`
	Skills  []*Skill       `json:"skills,omitempty"`
	AI      AI             `json:"-"`
	Vars    map[string]int `json:"vars"`

	// Призванные сущности
	OwnerID     EntityID `json:"ownerId,omitempty"`
	OwnedSpawn  bool     `json:"-"` // учитывается в spawn_count владельца
	LastSpawnID EntityID `json:"-"`

	Killed  bool `json:"killed"`
	Removed bool `json:"-"`
}

// NewEntity собирает сущность из описания фабрики. Скиллы и AI клонируются,
// стартовые эффекты накладывает симулятор (им нужен Context).
func NewEntity(id EntityID, d *EntityDescriptor) *Entity {
	e := &Entity{
		ID:          id,
		TemplateID:  d.TemplateID,
		Name:        d.Name,
		Sprite:      d.Sprite,
		Faction:     d.Faction,
		Tags:        mapset.New[string](),
		SpeedFactor: d.SpeedFactor,
		Static:      d.Static,
		Dressing:    d.Dressing,
		Vars:        make(map[string]int, len(d.Vars)),
		AI:          d.AI,
	}
	if e.SpeedFactor <= 0 {
		e.SpeedFactor = 1
	}
	for _, t := range d.Tags {
		e.Tags.Put(t)
	}
	for k, v := range d.Vars {
		e.Vars[k] = v
	}
	if _, ok := e.Vars[VarMaxHealth]; !ok {
		e.Vars[VarMaxHealth] = e.Vars[VarHealth]
	}
	if _, ok := e.Vars[VarHealth]; !ok {
		e.Vars[VarHealth] = e.Vars[VarMaxHealth]
	}
	for _, s := range d.Skills {
		e.AddSkill(s.Clone())
	}
	if e.AI != nil {
		e.AI = e.AI.Clone()
	}
	return e
}

func (e *Entity) ActorID() EntityID  { return e.ID }
func (e *Entity) GetInitiative() int { return e.Initiative }

func (e *Entity) Health() int    { return e.Vars[VarHealth] }
func (e *Entity) MaxHealth() int { return e.Vars[VarMaxHealth] }

func (e *Entity) HasTag(tag string) bool {
	return e.Tags.Has(tag)
}

func (e *Entity) AddTag(tag string)    { e.Tags.Put(tag) }
func (e *Entity) RemoveTag(tag string) { e.Tags.Remove(tag) }

// TagList - отсортированные теги (для снапшотов и логов).
func (e *Entity) TagList() []string {
	out := make([]string, 0, e.Tags.Size())
	e.Tags.Each(func(t string) { out = append(out, t) })
	sort.Strings(out)
	return out
}

// IsAlive: ни убита, ни удалена.
func (e *Entity) IsAlive() bool {
	return !e.Killed && !e.Removed
}

// Blocks - занимает ли сущность клетку для движения.
// Декорации и активные опасности (лава) не блокируют, solid блокирует всегда.
func (e *Entity) Blocks() bool {
	if !e.IsAlive() {
		return false
	}
	if e.HasTag(TagSolid) {
		return true
	}
	if e.Dressing || e.HasTag(TagHazard) {
		return false
	}
	return true
}

// IsHostileTo - разные фракции, нейтралы ни с кем не воюют.
func (e *Entity) IsHostileTo(other *Entity) bool {
	if e.Faction == FactionNeutral || other.Faction == FactionNeutral {
		return false
	}
	return e.Faction != "" && other.Faction != "" && e.Faction != other.Faction
}

// InitiativeCost - на сколько сдвигается инициатива за полный ход.
func (e *Entity) InitiativeCost(roundLength int) int {
	speed := e.SpeedFactor
	if speed <= 0 {
		speed = 1
	}
	cost := int(math.Round(float64(roundLength) / speed))
	if cost < 1 {
		cost = 1
	}
	return cost
}

// --- Урон ---

// Damage прогоняет урон через эффекты (по порядку), затем через AI.
// Возвращает фактически нанесённый урон.
func (e *Entity) Damage(ctx Context, amount int, t DamageType) int {
	if !e.IsAlive() {
		return 0
	}
	for _, eff := range e.Effects {
		if dp, ok := eff.(DamageProcessor); ok {
			amount = dp.ProcessDamage(amount, t)
		}
	}
	if e.AI != nil {
		amount = safeOnDamage(ctx, e, amount, t)
	}
	if amount < 0 {
		amount = 0
	}

	e.Vars[VarHealth] -= amount

	if t == DamagePhysical && amount > 0 {
		ctx.Cues().EmitParticle(ParticleBlood, AtEntity(e))
	}
	if amount > 0 {
		ctx.Animator().SetAnimation(e.ID, AnimHit)
	}
	if e.Health() < 1 && !e.Killed {
		ctx.Kill(e)
	}
	return amount
}

// Heal не превышает max_health.
func (e *Entity) Heal(amount int) int {
	if amount <= 0 || !e.IsAlive() {
		return 0
	}
	before := e.Health()
	e.Vars[VarHealth] = min(e.MaxHealth(), before+amount)
	return e.Health() - before
}

// --- Эффекты ---

// AddEffect: один экземпляр на kind-id. Повторное наложение только продлевает до max(old, new).
func (e *Entity) AddEffect(ctx Context, eff Effect) {
	for _, old := range e.Effects {
		if old.KindID() == eff.KindID() {
			if eff.Duration() > old.Duration() {
				old.SetDuration(eff.Duration())
			}
			return
		}
	}
	e.Effects = append(e.Effects, eff)
	eff.OnAdded(ctx, e)
}

func (e *Entity) Effect(kind string) Effect {
	for _, eff := range e.Effects {
		if eff.KindID() == kind {
			return eff
		}
	}
	return nil
}

func (e *Entity) RemoveEffect(ctx Context, kind string) bool {
	for i, eff := range e.Effects {
		if eff.KindID() == kind {
			e.Effects = slices.Delete(e.Effects, i, i+1)
			eff.OnRemoved(ctx, e)
			return true
		}
	}
	return false
}

// tickEffects - OnRound для каждого эффекта, истёкшие снимаются.
func (e *Entity) tickEffects(ctx Context) {
	var expired []Effect
	for _, eff := range slices.Clone(e.Effects) {
		if eff.OnRound(ctx, e) {
			expired = append(expired, eff)
		}
	}
	for _, eff := range expired {
		e.RemoveEffect(ctx, eff.KindID())
	}
}

// --- Скиллы ---

// AddSkill добавляет и пересортировывает по приоритету (по убыванию).
func (e *Entity) AddSkill(s *Skill) {
	e.Skills = append(e.Skills, s)
	sort.SliceStable(e.Skills, func(i, j int) bool {
		return e.Skills[i].Priority > e.Skills[j].Priority
	})
}

func (e *Entity) Skill(id string) *Skill {
	for _, s := range e.Skills {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// GetComboSkill ищет скилл, чей комбо-набор в точности равен ids.
func (e *Entity) GetComboSkill(ids []string) *Skill {
	sorted := slices.Clone(ids)
	sort.Strings(sorted)
	for _, s := range e.Skills {
		if len(s.ComboSet) > 0 && slices.Equal(s.ComboSet, sorted) {
			return s
		}
	}
	return nil
}

// startCooldown ставит кулдаун скиллу и всей его комбо-группе.
// Кулдауны участников перезаписываются, даже если уже тикали.
func (e *Entity) startCooldown(used *Skill) {
	used.RoundsToGo = used.CoolDown
	if len(used.ComboSet) == 0 {
		return
	}
	for _, s := range e.Skills {
		if s == used {
			continue
		}
		if slices.Contains(used.ComboSet, s.ID) || slices.Equal(s.ComboSet, used.ComboSet) {
			s.RoundsToGo = used.CoolDown
		}
	}
}

func (e *Entity) tickSkills() {
	for _, s := range e.Skills {
		s.Tick()
	}
}
