package domain

// CueTarget - куда привязать частицу: к сущности или к точке.
type CueTarget struct {
	Entity EntityID `json:"entity,omitempty"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
}

func AtEntity(e *Entity) CueTarget {
	return CueTarget{Entity: e.ID, X: e.Pos.X, Y: e.Pos.Y}
}

func AtPoint(x, y int) CueTarget {
	return CueTarget{X: x, Y: y}
}

// Transition - визуальный переход (fade, сдвиг спрайта).
type Transition struct {
	Kind     string `json:"kind"` // fade_in, fade_out, slide
	Duration int    `json:"duration"`
	Dx       int    `json:"dx,omitempty"`
	Dy       int    `json:"dy,omitempty"`
}

const (
	TransitionFadeIn  = "fade_in"
	TransitionFadeOut = "fade_out"
	TransitionSlide   = "slide"
)

// Animator - рендер глазами ядра. Ядру нужны только флаг занятости и длительности.
type Animator interface {
	SetAnimation(id EntityID, name string)
	IsAnimating(id EntityID) bool
	AnimationDuration(name string) int // миллисекунды
	AddVisualTransition(id EntityID, t Transition)
	// Release освобождает ресурсы сущности при удалении из мира.
	Release(id EntityID)
}

// CueSink - частицы и звуки, fire-and-forget.
type CueSink interface {
	EmitParticle(templateID string, at CueTarget)
	RemoveParticle(at CueTarget, templateID string)
	PlaySound(name string, at CueTarget)
}

type NopAnimator struct{}

func (NopAnimator) SetAnimation(EntityID, string)            {}
func (NopAnimator) IsAnimating(EntityID) bool                { return false }
func (NopAnimator) AnimationDuration(string) int             { return 0 }
func (NopAnimator) AddVisualTransition(EntityID, Transition) {}
func (NopAnimator) Release(EntityID)                         {}

type NopCues struct{}

func (NopCues) EmitParticle(string, CueTarget)   {}
func (NopCues) RemoveParticle(CueTarget, string) {}
func (NopCues) PlaySound(string, CueTarget)      {}
