package cmd

import (
	"context"
	"fmt"
	"time"

	"studyrec/internal/cache"
	"studyrec/internal/config"
	"studyrec/internal/logging"
	"studyrec/internal/recordstore"
	"studyrec/internal/remote"
	"studyrec/internal/session"
	"studyrec/internal/timer"
)

// fail prints the standard error block and invokes Exit. Callers must
// return after calling it, since the injected Exit may not terminate.
func fail(headline string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", headline)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// loadConfig reads the config file, falling back to defaults when absent.
func loadConfig() (config.Config, bool) {
	path, err := deps.ConfigPath()
	if err != nil {
		fail("Failed to determine config location", err, "Check that your home directory is accessible")
		return config.Config{}, false
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		fail("Failed to read config file", err, "Check the TOML syntax in "+path)
		return config.Config{}, false
	}
	return cfg, true
}

// openStore builds the record store for the configured user, seeded from
// the disk cache.
func openStore(cfg config.Config) (*recordstore.Store, bool) {
	if cfg.APIURL == "" {
		fail("No record API configured", nil, "Set it with: studyrec config --api-url <url>")
		return nil, false
	}
	if cfg.UserName == "" {
		fail("No user name configured", nil, "Set it with: studyrec user <name>")
		return nil, false
	}

	client := remote.NewClient(cfg.APIURL, remote.WithLogger(logging.Logger))
	opts := []recordstore.Option{
		recordstore.WithRefetchDelay(cfg.RefetchDelay()),
		recordstore.WithLogger(logging.Logger),
	}
	if cachePath, err := deps.CachePath(); err == nil {
		opts = append(opts, recordstore.WithCache(cache.New(cachePath)))
	} else {
		logging.Logger.Warn("cache unavailable", "err", err)
	}

	store := recordstore.New(client, cfg.UserName, opts...)
	if err := store.LoadCached(); err != nil {
		logging.Logger.Warn("cache read failed", "err", err)
	}
	return store, true
}

// refreshStore fetches the latest records, tolerating network failure by
// falling back to whatever the cache held.
func refreshStore(store *recordstore.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), remote.DefaultTimeout)
	defer cancel()
	if err := store.RefetchAll(ctx); err != nil {
		logging.Logger.Warn("refetch failed, using cached records", "err", err)
	}
}

// sessionStore opens the snapshot store.
func sessionStore() (session.Store, bool) {
	path, err := deps.SessionPath()
	if err != nil {
		fail("Failed to determine session location", err, "Check that your home directory is accessible")
		return nil, false
	}
	return session.NewFileStore(path), true
}

// recoverTimer rebuilds the timer from the snapshot, if one is active.
// Returns (nil, true) when no session is running.
func recoverTimer(store session.Store, opts ...timer.Option) (*timer.Timer, bool) {
	t, err := timer.Recover(store, opts...)
	if err != nil {
		fail("Failed to load session state", err, "")
		return nil, false
	}
	return t, true
}

// flushStore waits for pending sends and surfaces a delivery failure as a
// warning. The optimistic record stays local either way.
func flushStore(store *recordstore.Store) {
	if err := store.Flush(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: could not reach the record service (%v)\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "The record is kept locally; run 'studyrec sync' to verify later.")
	}
}

// formatMinutes renders a minute count as "Xh Ym" or "Ym".
func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// formatElapsed renders a duration as HH:MM:SS.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
