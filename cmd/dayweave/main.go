package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/avnerell/dayweave/internal/cli"
	"github.com/avnerell/dayweave/internal/config"
	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/intelligence"
	"github.com/avnerell/dayweave/internal/llm"
	"github.com/avnerell/dayweave/internal/repository"
	"github.com/avnerell/dayweave/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	store, err := docstore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	eventRepo := repository.NewDocEventRepo(store)
	profileRepo := repository.NewDocUserProfileRepo(store)
	historyRepo := repository.NewDocTaskHistoryRepo(store)

	// Completion-call telemetry goes to stderr only on an interactive
	// terminal; piped output stays clean.
	var llmObserver llm.Observer = llm.NoopObserver{}
	var useCaseObserver service.UseCaseObserver
	if cfg.LogUseCases && isatty.IsTerminal(os.Stderr.Fd()) {
		llmObserver = llm.NewLogObserver(os.Stderr)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	client := llm.NewOllamaClient(cfg.LLM, llmObserver)

	promptCfg := intelligence.DefaultPromptConfig()
	promptCfg.Timezone = cfg.Timezone
	promptCfg.StrictOverlapCheck = cfg.StrictOverlapCheck

	loc := time.Local
	if cfg.Timezone != "" {
		if l, lerr := time.LoadLocation(cfg.Timezone); lerr == nil {
			loc = l
		}
	}

	app := &cli.App{
		Schedule: service.NewScheduleService(eventRepo, profileRepo, historyRepo, client, promptCfg, cfg.MatchPolicy, useCaseObserver),
		Events:   service.NewEventService(eventRepo, profileRepo, cfg.MatchPolicy),
		Profiles: service.NewProfileService(profileRepo),
		History:  service.NewHistoryService(historyRepo),
		Import:   service.NewImportService(eventRepo),
		UserID:   cfg.UserID,
		Location: loc,
	}

	return cli.NewRootCmd(app).Execute()
}
