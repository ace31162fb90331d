package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWith(io.Discard)
	os.Exit(m.Run())
}

func TestJournalSaveLoad(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journals"))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder(42, 1)
	rec.RecordCommand(0, 1, domain.UserCommand{Kind: domain.CommandMove, Dx: 1, Dy: -1})
	rec.RecordCommand(100, 1, domain.UserCommand{Kind: domain.CommandAttack, TargetID: 7})
	rec.RecordCommand(200, 1, domain.UserCommand{Kind: domain.CommandSkill, Skills: []string{"fire", "ice"}, X: 3, Y: 4})
	rec.RecordCommand(300, 1, domain.UserCommand{Kind: domain.CommandWait})

	session := rec.Session()
	path, err := j.Save(session)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := j.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != session.ID || got.Seed != 42 || got.Depth != 1 || got.Timestamp != session.Timestamp {
		t.Errorf("header mismatch: %+v", got)
	}
	if len(got.Entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(got.Entries))
	}
	skill := got.Entries[2]
	if skill.Initiative != 200 || skill.Cmd.Kind != domain.CommandSkill || len(skill.Cmd.Skills) != 2 || skill.Cmd.X != 3 {
		t.Errorf("skill entry = %+v", skill)
	}
	if got.Entries[1].Cmd.TargetID != 7 || got.Entries[0].Cmd.Dy != -1 {
		t.Errorf("entries = %+v", got.Entries)
	}
}

func TestJournalRejectsGarbage(t *testing.T) {
	j, _ := NewJournal(t.TempDir())
	path := filepath.Join(j.Dir, "bad"+JournalExt)
	if err := os.WriteFile(path, []byte("not a journal"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Load(path); err == nil {
		t.Error("garbage accepted as a journal")
	}
}

func TestRecorderSessionIsCopy(t *testing.T) {
	rec := NewRecorder(1, 1)
	rec.RecordCommand(0, 1, domain.UserCommand{Kind: domain.CommandWait})
	s := rec.Session()
	rec.RecordCommand(100, 1, domain.UserCommand{Kind: domain.CommandWait})
	if len(s.Entries) != 1 || rec.Len() != 2 {
		t.Errorf("snapshot shares entries: %d / %d", len(s.Entries), rec.Len())
	}
}

func TestTurnIndex(t *testing.T) {
	idx, err := OpenTurnIndex(filepath.Join(t.TempDir(), "turns.db"), "s1")
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	for i := 1; i <= 5; i++ {
		idx.OnTurn(engine.TurnRecord{
			Turn: int64(i), Initiative: i * 100, EntityID: domain.EntityID(i%2 + 1),
			Template: "goblin", Health: 10 - i, X: i, Y: 2,
		})
	}
	ctx := context.Background()
	if err := idx.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	recent, err := idx.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 || recent[0].Turn != 3 || recent[2].Turn != 5 {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[2].X != 5 || recent[2].Health != 5 || recent[2].Template != "goblin" {
		t.Errorf("record fields lost: %+v", recent[2])
	}

	n, err := idx.CountFor(ctx, 2)
	if err != nil || n != 3 {
		t.Errorf("CountFor = %d, %v; want 3", n, err)
	}

	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}
	idx.OnTurn(engine.TurnRecord{Turn: 6})
	if _, err := idx.Recent(ctx, 1); err != ErrIndexClosed {
		t.Errorf("Recent after close = %v", err)
	}
}
