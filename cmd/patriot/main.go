package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/tommylowry/patriot-center/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/patriot/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	link := flag.String("location", "", "link to open on start, e.g. \"?year=2024&week=3\"")
	refresh := flag.Duration("refresh", 0, "refresh interval (optional, overrides config)")
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		PrefsPath:    *prefsPath,
		Location:     *link,
		RefreshEvery: *refresh,
	}
	if opts.Location == "" && flag.NArg() > 0 {
		opts.Location = flag.Arg(0)
	}

	if err := app.Run(ctx, opts); err != nil {
		glog.Errorf("patriot: %v", err)
		fmt.Fprintf(os.Stderr, "patriot: %v\n", err)
		return 1
	}
	return 0
}
