package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
)

const debugTimeout = 2 * time.Second

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Всё читается через Instance.Query, внутри игрового цикла.
type DebugHandler struct {
	Instance *engine.Instance
	Turns    TurnHistory
}

func NewDebugHandler(inst *engine.Instance, turns TurnHistory) *DebugHandler {
	return &DebugHandler{Instance: inst, Turns: turns}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/area", h.handleArea)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
	mux.HandleFunc("/debug/turns", h.handleTurns)
}

// /debug/area - текущая локация и часы симуляции
func (h *DebugHandler) handleArea(w http.ResponseWriter, r *http.Request) {
	type AreaSummary struct {
		AreaID      string `json:"area_id"`
		Depth       int    `json:"depth"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		EntityCount int    `json:"entity_count"`
		Initiative  int    `json:"initiative"`
		Turns       int64  `json:"turns"`
		Pending     int    `json:"pending_events"`
		Gate        string `json:"gate"`
		GameOver    bool   `json:"game_over"`
	}

	var sum AreaSummary
	h.query(w, r, func(sim *engine.Simulator) {
		sum = AreaSummary{
			Depth:       sim.Depth(),
			EntityCount: len(sim.Entities()),
			Initiative:  sim.Now(),
			Turns:       sim.Turns(),
			Pending:     sim.Events().PendingEvents(),
			Gate:        sim.Events().GateState(),
			GameOver:    sim.GameOver(),
		}
		if a := sim.Area(); a != nil {
			sum.AreaID = a.ID
		}
		if world := sim.World(); world != nil {
			sum.Width, sum.Height = world.Width, world.Height
		}
	}, func() { writeJSON(w, sum) })
}

// /debug/entities - дамп всех сущностей (включая невидимые игроку)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	type EntityDump struct {
		ID         domain.EntityID `json:"id"`
		Template   string          `json:"template"`
		Name       string          `json:"name"`
		Faction    string          `json:"faction"`
		X          int             `json:"x"`
		Y          int             `json:"y"`
		Health     int             `json:"health"`
		Initiative int             `json:"initiative"`
		Visible    bool            `json:"visible"`
		Tags       []string        `json:"tags,omitempty"`
		Vars       map[string]int  `json:"vars,omitempty"`
	}

	var out []EntityDump
	h.query(w, r, func(sim *engine.Simulator) {
		out = make([]EntityDump, 0, len(sim.Entities()))
		for _, e := range sim.Entities() {
			vars := make(map[string]int, len(e.Vars))
			for k, v := range e.Vars {
				vars[k] = v
			}
			out = append(out, EntityDump{
				ID:         e.ID,
				Template:   e.TemplateID,
				Name:       e.Name,
				Faction:    string(e.Faction),
				X:          e.Pos.X,
				Y:          e.Pos.Y,
				Health:     e.Health(),
				Initiative: e.Initiative,
				Visible:    e.Visible,
				Tags:       e.TagList(),
				Vars:       vars,
			})
		}
	}, func() { writeJSON(w, out) })
}

// /debug/queue - очередь ходов в порядке исполнения
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	var dump []engine.QueueEntry
	h.query(w, r, func(sim *engine.Simulator) {
		dump = sim.Events().Snapshot()
	}, func() { writeJSON(w, dump) })
}

// /debug/turns?n=50 - последние ходы из индекса
func (h *DebugHandler) handleTurns(w http.ResponseWriter, r *http.Request) {
	if h.Turns == nil {
		http.Error(w, "turn index disabled", http.StatusNotFound)
		return
	}
	n := 50
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "bad n", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), debugTimeout)
	defer cancel()
	recs, err := h.Turns.Recent(ctx, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, recs)
}

func (h *DebugHandler) query(w http.ResponseWriter, r *http.Request, fn func(sim *engine.Simulator), ok func()) {
	ctx, cancel := context.WithTimeout(r.Context(), debugTimeout)
	defer cancel()
	if err := h.Instance.Query(ctx, fn); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	ok()
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(data)
}
