package presentation

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Виды записей в журнале подсказок.
const (
	CueAnimation      = "animation"
	CueTransition     = "transition"
	CueParticle       = "particle"
	CueParticleRemove = "particle_remove"
	CueSound          = "sound"
	CueRelease        = "release"
)

// DefaultDurations - длительности анимаций в мс.
var DefaultDurations = map[string]int{
	domain.AnimIdle:     0,
	domain.AnimWalk:     120,
	domain.AnimAttack:   250,
	domain.AnimHit:      200,
	domain.AnimCast:     350,
	domain.AnimDeath:    600,
	domain.AnimHardened: 300,
	domain.AnimOpen:     200,
	domain.AnimClosed:   200,
}

// Cue - одна запись для клиента: что проиграть и где.
type Cue struct {
	Kind       string             `json:"kind"`
	Name       string             `json:"name,omitempty"`
	Target     domain.CueTarget   `json:"target"`
	Transition *domain.Transition `json:"transition,omitempty"`
	At         int64              `json:"at"`
}

// Timeline - Animator и CueSink хоста. Рендера нет: анимация считается
// проигрываемой, пока часы хоста не дошли до её дедлайна. Клиенту уходит
// журнал подсказок.
type Timeline struct {
	now       int64
	durations map[string]int
	deadlines map[domain.EntityID]int64
	current   map[domain.EntityID]string
	cues      []Cue
}

var (
	_ domain.Animator = (*Timeline)(nil)
	_ domain.CueSink  = (*Timeline)(nil)
)

func NewTimeline(durations map[string]int) *Timeline {
	d := make(map[string]int, len(DefaultDurations)+len(durations))
	for k, v := range DefaultDurations {
		d[k] = v
	}
	for k, v := range durations {
		d[k] = v
	}
	return &Timeline{
		durations: d,
		deadlines: make(map[domain.EntityID]int64),
		current:   make(map[domain.EntityID]string),
	}
}

// Advance двигает часы хоста. Назад не ходит.
func (t *Timeline) Advance(now int64) {
	if now > t.now {
		t.now = now
	}
}

func (t *Timeline) Now() int64 { return t.now }

func (t *Timeline) SetAnimation(id domain.EntityID, name string) {
	t.current[id] = name
	t.deadlines[id] = t.now + int64(t.AnimationDuration(name))
	t.cues = append(t.cues, Cue{Kind: CueAnimation, Name: name, Target: domain.CueTarget{Entity: id}, At: t.now})
}

func (t *Timeline) IsAnimating(id domain.EntityID) bool {
	return t.now < t.deadlines[id]
}

func (t *Timeline) AnimationDuration(name string) int {
	return t.durations[name]
}

// Animation - текущая (или последняя) анимация сущности.
func (t *Timeline) Animation(id domain.EntityID) string {
	if t.IsAnimating(id) {
		return t.current[id]
	}
	return domain.AnimIdle
}

func (t *Timeline) AddVisualTransition(id domain.EntityID, tr domain.Transition) {
	t.cues = append(t.cues, Cue{Kind: CueTransition, Target: domain.CueTarget{Entity: id}, Transition: &tr, At: t.now})
}

func (t *Timeline) Release(id domain.EntityID) {
	delete(t.deadlines, id)
	delete(t.current, id)
	t.cues = append(t.cues, Cue{Kind: CueRelease, Target: domain.CueTarget{Entity: id}, At: t.now})
}

func (t *Timeline) EmitParticle(templateID string, at domain.CueTarget) {
	t.cues = append(t.cues, Cue{Kind: CueParticle, Name: templateID, Target: at, At: t.now})
}

func (t *Timeline) RemoveParticle(at domain.CueTarget, templateID string) {
	t.cues = append(t.cues, Cue{Kind: CueParticleRemove, Name: templateID, Target: at, At: t.now})
}

func (t *Timeline) PlaySound(name string, at domain.CueTarget) {
	t.cues = append(t.cues, Cue{Kind: CueSound, Name: name, Target: at, At: t.now})
}

// Drain отдаёт накопленные подсказки и очищает журнал.
func (t *Timeline) Drain() []Cue {
	out := t.cues
	t.cues = nil
	return out
}

// Pending - сколько подсказок ждёт отправки.
func (t *Timeline) Pending() int { return len(t.cues) }
