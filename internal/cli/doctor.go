package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/driftmirror/driftmirror-cli/internal/credential"
	"github.com/driftmirror/driftmirror-cli/internal/store"
)

// DoctorCmd checks the local setup end to end: config file, backend,
// keyring, snapshot cache, and clock.
type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: config file
	switch {
	case ctx.ConfigErr != nil:
		fmt.Printf("❌ Config file: FAIL\n")
		fmt.Printf("   Error: %v\n", ctx.ConfigErr)
		hasError = true
	case fileMissing(ctx.ConfigPath):
		fmt.Printf("⚠ Config file: WARNING\n")
		fmt.Printf("   %s not found, defaults in use\n", ctx.ConfigPath)
	default:
		fmt.Printf("✓ Config file: OK\n")
	}

	// Check 2: backend reachable
	if err := checkBackend(ctx); err != nil {
		fmt.Printf("❌ Backend reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		fmt.Printf("   Checked %s; api.base_url or DRIFTMIRROR_API_URL changes it.\n",
			ctx.Config.API.BaseURL)
		hasError = true
	} else {
		fmt.Printf("✓ Backend reachable: OK\n")
	}

	// Check 3: keyring / token. A missing token is fine; only a broken
	// keyring is worth flagging, and even that never blocks local use.
	token, err := credential.Get(credential.TokenKey)
	switch {
	case err == nil && token != "":
		fmt.Printf("✓ Auth token: OK\n")
	case errors.Is(err, credential.ErrNotFound):
		fmt.Printf("✓ Auth token: OK\n")
		fmt.Printf("   Note: no token stored (local backends accept unauthenticated requests)\n")
	default:
		fmt.Printf("⚠ Auth token: WARNING\n")
		fmt.Printf("   keyring unavailable: %v\n", err)
	}

	// Check 4: snapshot cache
	switch {
	case !ctx.Config.Cache.Enabled:
		fmt.Printf("⊘ Snapshot cache: SKIPPED (disabled in config)\n")
	case ctx.CacheErr != nil:
		fmt.Printf("❌ Snapshot cache: FAIL\n")
		fmt.Printf("   Error: %v\n", ctx.CacheErr)
		hasError = true
	case ctx.Cache == nil:
		fmt.Printf("⊘ Snapshot cache: SKIPPED\n")
	default:
		syncedAt, err := ctx.Cache.LoadSnapshot(
			context.Background(), store.KindOverview, store.GlobalID, nil,
		)
		switch {
		case err == nil:
			fmt.Printf("✓ Snapshot cache: OK\n")
			fmt.Printf("   Note: dashboard last synced %s\n", syncedAt.Format("Jan 02 15:04"))
		case errors.Is(err, store.ErrNoSnapshot):
			fmt.Printf("✓ Snapshot cache: OK\n")
			fmt.Printf("   Note: nothing cached yet\n")
		default:
			fmt.Printf("❌ Snapshot cache: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	// Check 5: clock sanity. Streaks and week windows use local time.
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

func checkBackend(ctx *Context) error {
	probe, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ctx.Client.Health(probe)
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
