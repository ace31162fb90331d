package engine

import (
	"strconv"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/presentation"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
)

// AnimationSource - кто знает текущую анимацию сущности (Timeline).
type AnimationSource interface {
	Animation(id domain.EntityID) string
}

// BuildSnapshot создает "снимок" мира глазами игрока.
// Карта - только исследованные клетки, сущности - только видимые (игрок всегда).
func BuildSnapshot(sim *Simulator, anims AnimationSource, cues []presentation.Cue, logs []api.LogEntry) api.ServerResponse {
	resp := api.ServerResponse{
		Type:            api.TypeUpdate,
		Tick:            sim.Now(),
		Turn:            sim.Turns(),
		HostTime:        sim.HostTime(),
		Depth:           sim.Depth(),
		WaitingForInput: sim.WaitingForUser() && !sim.GameOver(),
	}
	if sim.GameOver() {
		resp.Type = api.TypeGameOver
	}

	player := sim.Player()
	if player != nil {
		resp.MyEntityID = idString(player.ID)
	}

	// 1. Карта (туман войны: только исследованные тайлы)
	world := sim.World()
	if world != nil {
		resp.Grid = &api.GridMeta{Width: world.Width, Height: world.Height}
		for y := 0; y < world.Height; y++ {
			for x := 0; x < world.Width; x++ {
				tile := world.TileAt(x, y)
				if !tile.Explored {
					continue
				}
				resp.Map = append(resp.Map, api.TileView{
					X: x, Y: y,
					Symbol:     tile.Template.Symbol,
					IsWall:     !tile.Template.Walkable,
					IsVisible:  tile.InLineOfSight,
					IsExplored: true,
				})
			}
		}
	}

	// 2. Сущности
	for _, e := range sim.Entities() {
		if e != player && !e.Visible {
			continue
		}
		resp.Entities = append(resp.Entities, toEntityView(e, e == player, anims))
	}

	// 3. Подсказки и логи
	for _, c := range cues {
		resp.Cues = append(resp.Cues, api.CueView{
			Kind:     c.Kind,
			Name:     c.Name,
			EntityID: idString(c.Target.Entity),
			X:        c.Target.X,
			Y:        c.Target.Y,
			At:       c.At,
		})
	}
	if len(logs) > 0 {
		resp.Logs = make([]api.LogEntry, len(logs))
		copy(resp.Logs, logs)
	}
	return resp
}

func toEntityView(e *domain.Entity, own bool, anims AnimationSource) api.EntityView {
	view := api.EntityView{
		ID:       idString(e.ID),
		Template: e.TemplateID,
		Name:     e.Name,
		Faction:  string(e.Faction),
		Pos:      api.Position{X: e.Pos.X, Y: e.Pos.Y},
		Sprite:   e.Sprite,
		Tags:     e.TagList(),
	}
	if anims != nil {
		view.Animation = anims.Animation(e.ID)
	}
	for _, eff := range e.Effects {
		view.Effects = append(view.Effects, eff.KindID())
	}
	// Статы только у живых существ, декорации без них
	if !e.Dressing {
		view.Stats = &api.StatsView{
			HP:         e.Health(),
			MaxHP:      e.MaxHealth(),
			Initiative: e.Initiative,
			IsDead:     !e.IsAlive(),
		}
	}
	if own {
		for _, s := range e.Skills {
			view.Skills = append(view.Skills, api.SkillView{
				ID:         s.ID,
				Name:       s.Name,
				Range:      s.Range,
				RoundsToGo: s.RoundsToGo,
				Combo:      s.ComboSet,
			})
		}
	}
	return view
}

func idString(id domain.EntityID) string {
	if id == domain.NoEntity {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
