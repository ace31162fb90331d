package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/agent"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/infrastructure/storage"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/network"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/presentation"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/server"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/version"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/dungeon"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

const (
	startDepth      = 1
	replayMaxFrames = 1_000_000
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		configPath string
		seed       int64
		replayPath string
		autopilot  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config (defaults if empty)")
	// 0 значит сгенерировать случайно
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to a session journal to re-simulate")
	flag.BoolVar(&autopilot, "autopilot", false, "Let the built-in bot play the wizard")
	flag.Parse()

	logger.Log.Info("Starting Wizards Duel...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}

	catalog, err := dungeon.LoadCatalogFile(cfg.Blueprints)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load blueprint catalog")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		if err := runReplay(cfg, catalog, replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	if err := runLive(cfg, catalog, autopilot); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Done.")
}

// buildSimulator собирает ядро на первой глубине с игроком в стартовой точке.
func buildSimulator(cfg engine.Config, catalog *dungeon.Catalog, tl *presentation.Timeline, c engine.Collaborators) (*engine.Simulator, error) {
	c.Animator = tl
	c.Cues = tl
	c.Areas = dungeon.NewProvider(cfg, catalog)

	sim := engine.NewSimulator(cfg, catalog, c)
	if err := sim.LoadDepth(startDepth); err != nil {
		return nil, err
	}
	if sim.SpawnPlayer(cfg.PlayerTemplate) == nil {
		return nil, fmt.Errorf("player template %q not in catalog", cfg.PlayerTemplate)
	}
	return sim, nil
}

func runLive(cfg engine.Config, catalog *dungeon.Catalog, autopilot bool) error {
	recorder := storage.NewRecorder(cfg.Seed, startDepth)
	session := recorder.Session().ID.String()

	// Индекс ходов необязателен: без него просто нет /debug/turns
	var (
		observer engine.TurnObserver
		history  server.TurnHistory
	)
	index, err := storage.OpenTurnIndex(cfg.Storage.IndexPath, session)
	if err != nil {
		logger.Log.WithError(err).Warn("Turn index disabled")
	} else {
		defer index.Close()
		observer, history = index, index
	}

	tl := presentation.NewTimeline(nil)
	sim, err := buildSimulator(cfg, catalog, tl, engine.Collaborators{
		Recorder: recorder,
		Observer: observer,
	})
	if err != nil {
		return err
	}

	hub := network.NewBroadcaster()
	inst := engine.NewInstance(sim, tl, hub)

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := inst.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Log.WithError(err).Error("Instance loop failed")
		}
	}()
	if autopilot {
		go agent.NewBot(hub, inst).Run(ctx)
	}

	srv := server.New(inst, hub, history, fmt.Sprintf(":%d", cfg.Server.Port))
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down...")
	case <-inst.Done():
		logger.Log.Info("Session finished")
		stop()
	case err := <-srvErr:
		stop()
		saveJournal(cfg, recorder)
		return err
	}
	<-inst.Done()
	if err := <-srvErr; err != nil {
		logger.Log.WithError(err).Warn("HTTP server shutdown")
	}

	saveJournal(cfg, recorder)
	return nil
}

// saveJournal - сохраняем сессию, чтобы её можно было переиграть через -replay
func saveJournal(cfg engine.Config, recorder *storage.Recorder) {
	if recorder.Len() == 0 {
		return
	}
	journal, err := storage.NewJournal(cfg.Storage.ReplayDir)
	if err != nil {
		logger.Log.WithError(err).Error("Journal directory unavailable")
		return
	}
	path, err := journal.Save(recorder.Session())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save journal")
		return
	}
	logger.Log.WithField("path", path).Infof("Journal saved (%d commands)", recorder.Len())
}

func runReplay(cfg engine.Config, catalog *dungeon.Catalog, path string) error {
	session, err := (&storage.Journal{}).Load(path)
	if err != nil {
		return err
	}
	cfg.Seed = session.Seed
	logger.Log.WithField("session", session.ID).Infof("Replaying %d commands, seed %d", len(session.Entries), session.Seed)

	tl := presentation.NewTimeline(nil)
	sim, err := buildSimulator(cfg, catalog, tl, engine.Collaborators{})
	if err != nil {
		return err
	}

	n, err := engine.RunReplay(sim, tl, session.Entries, replayMaxFrames)
	if err != nil {
		return err
	}
	if n != len(session.Entries) {
		return fmt.Errorf("%w: applied %d of %d commands", engine.ErrReplayDiverged, n, len(session.Entries))
	}

	hp := 0
	if player := sim.Player(); player != nil {
		hp = player.Health()
	}
	logger.Log.Infof("Replay OK: turns=%d depth=%d player_hp=%d game_over=%v",
		sim.Turns(), sim.Depth(), hp, sim.GameOver())
	return nil
}
