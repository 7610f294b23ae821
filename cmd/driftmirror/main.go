package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/driftmirror/driftmirror-cli/internal/api"
	"github.com/driftmirror/driftmirror-cli/internal/cli"
	"github.com/driftmirror/driftmirror-cli/internal/config"
	"github.com/driftmirror/driftmirror-cli/internal/credential"
	"github.com/driftmirror/driftmirror-cli/internal/logger"
	"github.com/driftmirror/driftmirror-cli/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/driftmirror/config.yaml"`
	Debug   bool   `help:"Verbose logging, mirrored to stderr."`

	Tui       cli.TuiCmd       `cmd:"" help:"Launch the full-screen TUI." default:"1"`
	Onboard   cli.OnboardCmd   `cmd:"" help:"Set up a goal through the guided wizard."`
	Checkin   cli.CheckinCmd   `cmd:"" help:"Record a check-in from the command line."`
	Dashboard cli.DashboardCmd `cmd:"" help:"Print the drift dashboard."`
	Mirror    cli.MirrorCmd    `cmd:"" help:"Print the latest mirror report for a goal."`
	Summary   cli.SummaryCmd   `cmd:"" help:"Print the progress summary for a goal."`
	Goal      struct {
		List             cli.GoalListCmd             `cmd:"" help:"List tracked goals."`
		Show             cli.GoalShowCmd             `cmd:"" help:"Show one goal in full."`
		Delete           cli.GoalDeleteCmd           `cmd:"" help:"Delete a goal and its history."`
		SetMinimumAction cli.GoalSetMinimumActionCmd `cmd:"" name:"set-minimum-action" help:"Rewrite the minimum action."`
		RevertPlan       cli.GoalRevertPlanCmd       `cmd:"" name:"revert-plan" help:"Restore the original plan values."`
	} `cmd:"" help:"Manage goals."`
	Diary struct {
		Add  cli.DiaryAddCmd  `cmd:"" help:"Write a journal entry."`
		List cli.DiaryListCmd `cmd:"" help:"Print the journal."`
		Edit cli.DiaryEditCmd `cmd:"" help:"Edit an entry."`
	} `cmd:"" help:"Free-form journal."`
	Review struct {
		Add  cli.ReviewAddCmd  `cmd:"" help:"Record a quarterly review."`
		List cli.ReviewListCmd `cmd:"" help:"Print quarterly reviews."`
		Edit cli.ReviewEditCmd `cmd:"" help:"Edit a review."`
	} `cmd:"" help:"Quarterly reviews."`
	Demo struct {
		Seed cli.DemoSeedCmd `cmd:"" help:"Load demo data into the backend."`
	} `cmd:"" help:"Demo data."`
	Auth struct {
		SetToken   cli.AuthSetTokenCmd   `cmd:"" name:"set-token" help:"Store the backend token in the keyring."`
		ClearToken cli.AuthClearTokenCmd `cmd:"" name:"clear-token" help:"Remove the stored token."`
		Status     cli.AuthStatusCmd     `cmd:"" help:"Show whether a token is stored."`
	} `cmd:"" help:"Backend credentials."`
	Doctor cli.DoctorCmd `cmd:"" help:"Check the local setup."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("driftmirror"),
		kong.Description("Terminal client for DriftMirror: goals, check-ins, and honest drift detection"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	// A broken config file falls back to defaults so doctor still runs.
	cfg, cfgErr := config.Load(CLI.Config)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (defaults in use)\n", cfgErr)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Debug:  CLI.Debug,
		LogDir: config.DefaultLogDir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := api.New(cfg.API.BaseURL, logger.Get(),
		api.WithToken(credential.Token()),
		api.WithTimeout(time.Duration(cfg.API.TimeoutSec)*time.Second),
	)

	// The cache is best effort: when it cannot open, everything still
	// works against the live backend.
	var cache store.Store
	var cacheErr error
	if cfg.Cache.Enabled {
		sqlStore, err := store.NewSQLiteStore(cfg.Cache.Path)
		if err != nil {
			cacheErr = err
			logger.Warn("snapshot cache unavailable", "err", err)
		} else {
			cache = sqlStore
		}
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
		Client:     client,
		Cache:      cache,
		Debug:      CLI.Debug,
		ConfigErr:  cfgErr,
		CacheErr:   cacheErr,
	}

	err := ctx.Run(appCtx)
	if cache != nil {
		_ = cache.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
