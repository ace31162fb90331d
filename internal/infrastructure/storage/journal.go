package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
)

const (
	MagicHeader string = `WDJR` // 4 байта
	Version1    uint32 = 1

	// JournalExt - расширение файлов журнала (бинарь внутри zstd).
	JournalExt = ".wdj"
)

// Session - записанная сессия: сид + команды игрока в порядке поглощения.
type Session struct {
	ID        uuid.UUID
	Seed      int64
	Timestamp int64
	Depth     int
	Entries   []engine.JournalEntry
}

// JournalFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type JournalFileHeader struct {
	Magic       [4]byte  // 4 байта
	Version     uint32   // 4 байта
	SessionID   [16]byte // 16 байт
	Seed        int64    // 8 байт
	Timestamp   int64    // 8 байт
	Depth       int32    // 4 байта
	ActionCount int32    // 4 байта
}

// ActionHeader - заголовок каждой записи команды.
type ActionHeader struct {
	Initiative int32  // 4
	Actor      uint64 // 8
	Kind       uint8  // 1
	PayloadLen uint16 // 2
}

// Journal пишет и читает сессии в каталоге.
type Journal struct {
	Dir string
}

func NewJournal(dir string) (*Journal, error) {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Journal{Dir: dir}, nil
}

// Save пишет сессию в новый файл и возвращает путь к нему.
func (j *Journal) Save(session *Session) (string, error) {
	filename := fmt.Sprintf("journal_%d_%s%s", session.Seed, session.ID, JournalExt)
	path := filepath.Join(j.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(enc)
	if err := writeBinary(w, session); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := w.Flush(); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Load читает сессию из файла журнала.
func (j *Journal) Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return readBinary(bufio.NewReader(dec))
}

func writeBinary(w io.Writer, s *Session) error {
	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := JournalFileHeader{
		Version:     Version1,
		SessionID:   s.ID,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Depth:       int32(s.Depth),
		ActionCount: int32(len(s.Entries)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Пишем команды: заголовок + JSON команды
	for _, e := range s.Entries {
		payload, err := json.Marshal(e.Cmd)
		if err != nil {
			return err
		}
		if len(payload) > 65535 {
			return fmt.Errorf("payload too long: %d", len(payload))
		}

		actHeader := ActionHeader{
			Initiative: int32(e.Initiative),
			Actor:      uint64(e.Actor),
			Kind:       uint8(e.Cmd.Kind),
			PayloadLen: uint16(len(payload)),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}

	return nil
}

func readBinary(r io.Reader) (*Session, error) {
	// 1. Читаем заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("negative action count: %d", header.ActionCount)
	}

	session := &Session{
		ID:        header.SessionID,
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Depth:     int(header.Depth),
		Entries:   make([]engine.JournalEntry, 0, header.ActionCount),
	}

	// 2. Читаем команды
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		payload := make([]byte, ah.PayloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		var cmd domain.UserCommand
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if uint8(cmd.Kind) != ah.Kind {
			return nil, fmt.Errorf("action %d: kind mismatch %d != %d", i, cmd.Kind, ah.Kind)
		}

		session.Entries = append(session.Entries, engine.JournalEntry{
			Initiative: int(ah.Initiative),
			Actor:      domain.EntityID(ah.Actor),
			Cmd:        cmd,
		})
	}

	return session, nil
}

// NewSession - пустая сессия с новым ID.
func NewSession(seed int64, depth int) *Session {
	return &Session{
		ID:        uuid.New(),
		Seed:      seed,
		Timestamp: time.Now().Unix(),
		Depth:     depth,
	}
}
