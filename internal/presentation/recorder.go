package presentation

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Call - один вызов коллаборатора.
type Call struct {
	Kind   string
	ID     domain.EntityID
	Name   string
	Target domain.CueTarget
}

// Recorder записывает все вызовы Animator/CueSink. Тесты через Busy
// изображают "сущность в анимации".
type Recorder struct {
	Calls     []Call
	Busy      map[domain.EntityID]bool
	Durations map[string]int
}

var (
	_ domain.Animator = (*Recorder)(nil)
	_ domain.CueSink  = (*Recorder)(nil)
)

func NewRecorder() *Recorder {
	return &Recorder{
		Busy:      make(map[domain.EntityID]bool),
		Durations: make(map[string]int),
	}
}

func (r *Recorder) SetAnimation(id domain.EntityID, name string) {
	r.Calls = append(r.Calls, Call{Kind: CueAnimation, ID: id, Name: name})
}

func (r *Recorder) IsAnimating(id domain.EntityID) bool { return r.Busy[id] }

func (r *Recorder) AnimationDuration(name string) int { return r.Durations[name] }

func (r *Recorder) AddVisualTransition(id domain.EntityID, t domain.Transition) {
	r.Calls = append(r.Calls, Call{Kind: CueTransition, ID: id, Name: t.Kind})
}

func (r *Recorder) Release(id domain.EntityID) {
	r.Calls = append(r.Calls, Call{Kind: CueRelease, ID: id})
}

func (r *Recorder) EmitParticle(templateID string, at domain.CueTarget) {
	r.Calls = append(r.Calls, Call{Kind: CueParticle, ID: at.Entity, Name: templateID, Target: at})
}

func (r *Recorder) RemoveParticle(at domain.CueTarget, templateID string) {
	r.Calls = append(r.Calls, Call{Kind: CueParticleRemove, ID: at.Entity, Name: templateID, Target: at})
}

func (r *Recorder) PlaySound(name string, at domain.CueTarget) {
	r.Calls = append(r.Calls, Call{Kind: CueSound, ID: at.Entity, Name: name, Target: at})
}

// Count - сколько раз был вызов данного вида с данным именем ("" - любое имя).
func (r *Recorder) Count(kind, name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind && (name == "" || c.Name == name) {
			n++
		}
	}
	return n
}

// For - вызовы, относящиеся к сущности.
func (r *Recorder) For(id domain.EntityID) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.ID == id {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Reset() { r.Calls = nil }
