package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Juskocode/QDSMarketTool/internal/domain"
	"github.com/Juskocode/QDSMarketTool/internal/infra"
	"github.com/Juskocode/QDSMarketTool/internal/infra/calendar"
	"github.com/Juskocode/QDSMarketTool/internal/infra/storage"
	"github.com/Juskocode/QDSMarketTool/internal/infra/zabbix"
	"github.com/Juskocode/QDSMarketTool/internal/service"
)

// Bootstrap orchestrates the tool startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Store   *storage.Store
	Writer  *zabbix.Writer
	Venues  []domain.VenueConfig
	Service *service.StateService
	Metrics *infra.Metrics
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and wires every collaborator.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping market schedule updater...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize state storage
	store, err := storage.NewStore(cfg.Output.StateDB)
	if err != nil {
		return err
	}
	b.Store = store
	slog.Info("✅ State database initialized")

	// 4. Load venue allowlist
	venues, err := infra.LoadMarkets(cfg.Inputs.MarketsFile)
	if err != nil {
		return fmt.Errorf("failed to load markets list: %w", err)
	}
	b.Venues = venues
	slog.Info("✅ Markets list loaded", slog.Int("venues", len(venues)))

	// 5. Load schedule token sources; either may be absent
	tokens := map[string]string{}
	if cfg.Inputs.ScheduleCSV != "" {
		tokens, err = infra.LoadAggregatedTokens(cfg.Inputs.ScheduleCSV)
		if err != nil {
			slog.Warn("failed to load aggregated schedules, proceeding without",
				slog.Any("error", err))
			tokens = map[string]string{}
		}
	}
	defaults := map[string]string{}
	if cfg.Inputs.DefaultsFile != "" {
		defaults, err = infra.LoadDefaultsTokens(cfg.Inputs.DefaultsFile, cfg.Inputs.KeyPrefix)
		if err != nil {
			slog.Warn("failed to load defaults tokens, proceeding without",
				slog.Any("error", err))
			defaults = map[string]string{}
		}
	}

	// 6. Trading-calendar fallback: remote service when configured,
	// otherwise the built-in business calendar (day-level only)
	var remote service.CalendarService
	if cfg.Calendar.URL != "" {
		remote = infra.NewCalendarClient(cfg.Calendar.URL, time.Duration(cfg.Calendar.TimeoutSec)*time.Second)
		slog.Info("✅ Remote trading calendar configured", slog.String("url", cfg.Calendar.URL))
	}

	b.Metrics = &infra.Metrics{}
	b.Writer = zabbix.NewWriter(cfg.Output.SenderFile, cfg.Output.Host)
	b.Service = service.NewStateService(tokens, defaults, remote, calendar.NewUSCalendar(), b.Metrics)

	return nil
}

// Run performs one evaluation cycle: compute every venue's state, write the
// sender input (always) and per-minute files (if enabled), persist previous
// states only when something changed, and log the run summary.
func (b *Bootstrap) Run(ctx context.Context) error {
	now := time.Now().UTC()

	previous, err := b.Store.LoadStates()
	if err != nil {
		return fmt.Errorf("failed to load previous states: %w", err)
	}

	outcomes := b.Service.RunCycle(ctx, b.Venues, now, previous)

	lines := make([]string, 0, len(outcomes))
	anyChanged := false
	for _, o := range outcomes {
		lines = append(lines, b.Writer.Line(o.Venue.ItemKey, o.Open))
		if o.Changed {
			anyChanged = true
		}
	}

	if err := b.Writer.WriteSenderInput(lines); err != nil {
		return fmt.Errorf("failed to write sender input: %w", err)
	}

	if b.Config.Output.PerMinute {
		for _, v := range b.Venues {
			states := b.Service.MinuteVector(ctx, v, now)
			path, err := b.Writer.WritePerMinute(v.ID, now, states)
			if err != nil {
				slog.Warn("per-minute file write failed",
					slog.String("market", v.ID), slog.Any("error", err))
				continue
			}
			slog.Info("wrote per-minute file", slog.String("file", path), slog.Int("lines", len(states)))
		}
	}

	if anyChanged {
		if err := b.Store.SaveStates(previous); err != nil {
			slog.Error("cannot persist previous states", slog.Any("error", err))
		}
	}

	snap := b.Metrics.Snapshot()
	slog.Info("✨ Run completed",
		slog.Int("markets", len(b.Venues)),
		slog.Int("lines", len(lines)),
		slog.Bool("state_changed", anyChanged),
		slog.Uint64("aggregated_hits", snap.AggregatedHits),
		slog.Uint64("defaults_hits", snap.DefaultsHits),
		slog.Uint64("calendar_hits", snap.CalendarHits),
		slog.Uint64("resolve_failures", snap.ResolveFailures))

	return nil
}
