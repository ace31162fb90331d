package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/ai"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/network"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/presentation"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/version"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWith(io.Discard)
	os.Exit(m.Run())
}

func testFactory(id string) (*domain.EntityDescriptor, error) {
	switch id {
	case "hero":
		return &domain.EntityDescriptor{
			TemplateID: id, Name: "Hero", Faction: domain.FactionPlayer,
			Vars: map[string]int{domain.VarHealth: 10, domain.VarAttack: 3},
			AI:   &ai.User{},
		}, nil
	case "goblin":
		return &domain.EntityDescriptor{
			TemplateID: id, Name: "Goblin", Faction: domain.FactionMonster,
			Vars: map[string]int{domain.VarHealth: 4, domain.VarAttack: 1},
		}, nil
	}
	return nil, fmt.Errorf("no template %q", id)
}

type fakeTurns struct{ recs []engine.TurnRecord }

func (f *fakeTurns) Recent(_ context.Context, n int) ([]engine.TurnRecord, error) {
	if n > len(f.recs) {
		n = len(f.recs)
	}
	return f.recs[len(f.recs)-n:], nil
}

// startServer поднимает инстанс с героем в (1,1) и гоблином в (8,8).
func startServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	tl := presentation.NewTimeline(nil)
	sim := engine.NewSimulator(engine.NewConfig(), domain.FactoryFunc(testFactory), engine.Collaborators{
		Animator: tl, Cues: tl,
	})
	sim.LoadArea(&domain.Area{ID: "test", Depth: 1, World: domain.NewGameWorld(10, 10, domain.FloorTemplate)})
	sim.SetPlayer(sim.CreateEntity("hero", 1, 1))
	sim.CreateEntity("goblin", 8, 8)

	hub := network.NewBroadcaster()
	inst := engine.NewInstance(sim, tl, hub)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = inst.Run(ctx) }()

	turns := &fakeTurns{recs: []engine.TurnRecord{{Turn: 1}, {Turn: 2}, {Turn: 3}}}
	srv := New(inst, hub, turns, ":0")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-inst.Done()
	})
	return ts, srv
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil читает снимки, пока pred не вернёт true.
func readUntil(t *testing.T, conn *websocket.Conn, pred func(api.ServerResponse) bool) api.ServerResponse {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg api.ServerResponse
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if pred(msg) {
			return msg
		}
	}
}

func TestWebSocketSession(t *testing.T) {
	ts, srv := startServer(t)
	conn := dial(t, ts)

	first := readUntil(t, conn, func(api.ServerResponse) bool { return true })
	if first.MyEntityID != "1" || first.Grid == nil {
		t.Fatalf("greeting snapshot = %+v", first)
	}
	if srv.Hub.SubscriberCount() != 1 {
		t.Errorf("subscribers = %d, want 1", srv.Hub.SubscriberCount())
	}

	// Неизвестное действие - ответ ERROR только этому клиенту
	if err := conn.WriteJSON(api.ClientCommand{Action: "DANCE"}); err != nil {
		t.Fatal(err)
	}
	errMsg := readUntil(t, conn, func(m api.ServerResponse) bool { return m.Type == api.TypeError })
	if !strings.Contains(errMsg.Error, "unknown action") {
		t.Errorf("error = %q", errMsg.Error)
	}

	payload, _ := json.Marshal(api.DirectionPayload{Dx: 1, Dy: 0})
	if err := conn.WriteJSON(api.ClientCommand{Action: "MOVE", Payload: payload}); err != nil {
		t.Fatal(err)
	}
	moved := readUntil(t, conn, func(m api.ServerResponse) bool { return m.Turn >= 1 })
	for _, e := range moved.Entities {
		if e.ID == "1" && (e.Pos.X != 2 || e.Pos.Y != 1) {
			t.Errorf("hero at %+v, want (2,1)", e.Pos)
		}
	}
}

func TestHTTPEndpoints(t *testing.T) {
	ts, _ := startServer(t)

	get := func(path string) (int, []byte) {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, body
	}

	tests := []struct {
		path   string
		status int
		check  func(body []byte) error
	}{
		{"/health", http.StatusOK, func(b []byte) error {
			if string(b) != "ok" {
				return fmt.Errorf("body %q", b)
			}
			return nil
		}},
		{"/version", http.StatusOK, func(b []byte) error {
			var info version.VersionInfo
			if err := json.Unmarshal(b, &info); err != nil {
				return err
			}
			if info.Module != version.Module || info.Rules != version.Rules {
				return fmt.Errorf("version %+v", info)
			}
			return nil
		}},
		{"/debug/queue", http.StatusOK, func(b []byte) error {
			var q []engine.QueueEntry
			if err := json.Unmarshal(b, &q); err != nil {
				return err
			}
			if len(q) < 2 {
				return fmt.Errorf("queue has %d actors", len(q))
			}
			return nil
		}},
		{"/debug/entities", http.StatusOK, func(b []byte) error {
			if !strings.Contains(string(b), `"goblin"`) {
				return fmt.Errorf("goblin missing in %s", b)
			}
			return nil
		}},
		{"/debug/area", http.StatusOK, func(b []byte) error {
			if !strings.Contains(string(b), `"area_id":"test"`) {
				return fmt.Errorf("area summary %s", b)
			}
			return nil
		}},
		{"/debug/turns?n=2", http.StatusOK, func(b []byte) error {
			var recs []engine.TurnRecord
			if err := json.Unmarshal(b, &recs); err != nil {
				return err
			}
			if len(recs) != 2 || recs[1].Turn != 3 {
				return fmt.Errorf("turns %+v", recs)
			}
			return nil
		}},
		{"/debug/turns?n=x", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(tt.path)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%s)", status, tt.status, body)
			}
			if tt.check != nil {
				if err := tt.check(body); err != nil {
					t.Error(err)
				}
			}
		})
	}
}
