package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"

	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// ErrIndexClosed возвращается после Close.
var ErrIndexClosed = errors.New("turn index closed")

const (
	turnIndexBuffer = 1024
	turnIndexBatch  = 256
)

// TurnIndex - индекс разрешённых ходов в sqlite (отладка, аналитика).
// Запись асинхронная: OnTurn не блокирует игровой цикл.
type TurnIndex struct {
	db *sql.DB

	session string
	reqCh   chan indexReq
	closed  atomic.Bool
	dropped atomic.Int64

	wg   sync.WaitGroup
	once sync.Once
	log  *logrus.Entry
}

type indexReq struct {
	rec   engine.TurnRecord
	flush chan struct{}
}

var _ engine.TurnObserver = (*TurnIndex)(nil)

// OpenTurnIndex открывает (или создаёт) базу. Пустой session - "default".
func OpenTurnIndex(path, session string) (*TurnIndex, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Один писатель, иначе :memory: превращается в несколько разных баз.
	db.SetMaxOpenConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if session == "" {
		session = "default"
	}

	idx := &TurnIndex{
		db:      db,
		session: session,
		reqCh:   make(chan indexReq, turnIndexBuffer),
		log:     logger.For("turn-index"),
	}
	idx.wg.Add(1)
	go idx.loop()
	return idx, nil
}

func initPragmas(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS turns (
  session TEXT NOT NULL,
  turn INTEGER NOT NULL,
  initiative INTEGER NOT NULL,
  entity_id INTEGER NOT NULL,
  template TEXT NOT NULL,
  health INTEGER NOT NULL,
  x INTEGER NOT NULL,
  y INTEGER NOT NULL,
  PRIMARY KEY(session, turn)
);
CREATE INDEX IF NOT EXISTS turns_entity ON turns(session, entity_id);
`)
	return err
}

// OnTurn ставит запись в очередь. При переполнении запись теряется (счётчик Dropped).
func (t *TurnIndex) OnTurn(rec engine.TurnRecord) {
	if t == nil || t.closed.Load() {
		return
	}
	select {
	case t.reqCh <- indexReq{rec: rec}:
	default:
		if t.dropped.Add(1) == 1 {
			t.log.Warn("Turn index queue is full, dropping records")
		}
	}
}

// Flush ждёт, пока всё поставленное до вызова будет записано.
func (t *TurnIndex) Flush(ctx context.Context) error {
	if t.closed.Load() {
		return ErrIndexClosed
	}
	done := make(chan struct{})
	select {
	case t.reqCh <- indexReq{flush: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *TurnIndex) Dropped() int64 { return t.dropped.Load() }

// Recent возвращает последние n ходов сессии, от старых к новым.
func (t *TurnIndex) Recent(ctx context.Context, n int) ([]engine.TurnRecord, error) {
	if t.closed.Load() {
		return nil, ErrIndexClosed
	}
	if n <= 0 {
		return nil, nil
	}
	rows, err := t.db.QueryContext(ctx, `
SELECT turn, initiative, entity_id, template, health, x, y FROM (
  SELECT * FROM turns WHERE session = ? ORDER BY turn DESC LIMIT ?
) ORDER BY turn ASC`, t.session, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.TurnRecord
	for rows.Next() {
		var rec engine.TurnRecord
		var id int64
		if err := rows.Scan(&rec.Turn, &rec.Initiative, &id, &rec.Template, &rec.Health, &rec.X, &rec.Y); err != nil {
			return nil, err
		}
		rec.EntityID = domain.EntityID(id)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountFor - сколько ходов сделала сущность в этой сессии.
func (t *TurnIndex) CountFor(ctx context.Context, id domain.EntityID) (int, error) {
	if t.closed.Load() {
		return 0, ErrIndexClosed
	}
	var n int
	err := t.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE session = ? AND entity_id = ?`, t.session, int64(id)).Scan(&n)
	return n, err
}

func (t *TurnIndex) Close() error {
	var err error
	t.once.Do(func() {
		t.closed.Store(true)
		close(t.reqCh)
		t.wg.Wait()
		err = t.db.Close()
	})
	return err
}

func (t *TurnIndex) loop() {
	defer t.wg.Done()

	var (
		tx      *sql.Tx
		stmt    *sql.Stmt
		pending int
	)
	commit := func() {
		if tx == nil {
			return
		}
		if err := tx.Commit(); err != nil {
			t.log.WithError(err).Error("Turn index commit failed")
		}
		tx, stmt, pending = nil, nil, 0
	}
	begin := func() bool {
		var err error
		tx, err = t.db.Begin()
		if err != nil {
			t.log.WithError(err).Error("Turn index begin failed")
			tx = nil
			return false
		}
		stmt, err = tx.Prepare(`INSERT OR REPLACE INTO turns
(session, turn, initiative, entity_id, template, health, x, y) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			t.log.WithError(err).Error("Turn index prepare failed")
			_ = tx.Rollback()
			tx, stmt = nil, nil
			return false
		}
		return true
	}

	for req := range t.reqCh {
		if req.flush != nil {
			commit()
			close(req.flush)
			continue
		}
		if tx == nil && !begin() {
			continue
		}
		r := req.rec
		if _, err := stmt.Exec(t.session, r.Turn, r.Initiative, int64(r.EntityID), r.Template, r.Health, r.X, r.Y); err != nil {
			t.log.WithError(err).WithField("turn", r.Turn).Error("Turn index insert failed")
		}
		pending++
		if pending >= turnIndexBatch || len(t.reqCh) == 0 {
			commit()
		}
	}
	commit()
}
