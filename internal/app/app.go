package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/tommylowry/patriot-center/internal/config"
	"github.com/tommylowry/patriot-center/internal/fetch"
	"github.com/tommylowry/patriot-center/internal/location"
	"github.com/tommylowry/patriot-center/internal/metrics"
	"github.com/tommylowry/patriot-center/internal/options"
	"github.com/tommylowry/patriot-center/internal/patriot"
	"github.com/tommylowry/patriot-center/internal/prefs"
	"github.com/tommylowry/patriot-center/internal/state"
	"github.com/tommylowry/patriot-center/internal/syncctl"
	"github.com/tommylowry/patriot-center/internal/ui"
)

// Options configure the dashboard.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/patriot/prefs.toml
	// Location is the link the dashboard opens on, e.g. "?year=2024&week=3".
	Location string
	// RefreshEvery overrides the configured refresh interval when positive.
	RefreshEvery time.Duration
}

// Run boots the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = opts.RefreshEvery
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := patriot.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	deps := wire(cfg, client, opts.Location)
	defer deps.controller.Close()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := deps.metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				glog.Errorf("metrics: %v", err)
			}
		}()
	}

	initial := location.NewCodec(cfg.DefaultSeason).DecodeString(opts.Location)
	if err := preload(ctx, deps.store, client, initial, cfg.RequestTimeout); err != nil {
		glog.Warningf("initial load failed: %v", err)
	}

	glog.Infof("dashboard starting: api=%s season=%s resolver=%s", cfg.APIBase, cfg.DefaultSeason, deps.resolver.ID())

	return ui.Run(ui.Options{
		Context:         ctx,
		Controller:      deps.controller,
		Queue:           deps.queue,
		Resolver:        deps.resolver,
		Players:         client,
		Store:           deps.store,
		Busy:            deps.busy,
		Recorder:        deps.metrics,
		Season:          cfg.DefaultSeason,
		RequestTimeout:  cfg.RequestTimeout,
		RefreshInterval: cfg.RefreshInterval,
		ThemeName:       userPrefs.Theme,
		RowLimit:        userPrefs.RowLimit,
		PrefsPath:       opts.PrefsPath,
	})
}

type components struct {
	metrics    *metrics.Metrics
	busy       *fetch.Busy
	resolver   *options.Resolver
	queue      *syncctl.Queue
	controller *syncctl.Controller
	store      *state.Store
}

// wire builds the shared pieces: one busy tracker for every lookup, one
// controller over a history seeded with the starting link.
func wire(cfg config.Config, source options.Source, startAt string) components {
	m := metrics.New()
	busy := fetch.NewBusy(m.BusyChanged)
	queue := &syncctl.Queue{}

	return components{
		metrics: m,
		busy:    busy,
		resolver: options.New(options.Config{
			Source:       source,
			Busy:         busy,
			Timeout:      cfg.RequestTimeout,
			ClearOnError: cfg.ClearOptionsOnError,
			Recorder:     m,
		}),
		queue: queue,
		controller: syncctl.New(syncctl.Options{
			Codec:     location.NewCodec(cfg.DefaultSeason),
			History:   location.NewHistory(location.ParseLocation(startAt)),
			Scheduler: queue,
			Recorder:  m,
		}),
		store: &state.Store{},
	}
}
