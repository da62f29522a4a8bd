package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studyrec/internal/config"
	"studyrec/internal/record"
	"studyrec/internal/remote/remotetest"
	"studyrec/internal/session"
)

// testEnv wires commands to temp paths, captured output, and a fake
// record service.
type testEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	stdin    *bytes.Buffer
	exitCode *int
	srv      *remotetest.Server
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	srv := remotetest.NewServer()
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = srv.URL()
	cfg.UserName = "alice"
	configPath := filepath.Join(dir, config.ConfigFile)
	if err := config.Save(configPath, cfg); err != nil {
		t.Fatalf("Save config failed: %v", err)
	}

	env := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		stdin:    &bytes.Buffer{},
		exitCode: new(int),
		srv:      srv,
	}
	SetDeps(&Deps{
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		Stdin:       env.stdin,
		Exit:        func(code int) { *env.exitCode = code },
		ConfigPath:  func() (string, error) { return configPath, nil },
		SessionPath: func() (string, error) { return filepath.Join(dir, session.SnapshotFile), nil },
		CachePath:   func() (string, error) { return cacheDir, nil },
	})
	t.Cleanup(ResetDeps)
	return env
}

func TestStartStatusFinishFlow(t *testing.T) {
	env := setupEnv(t)

	startSession("Math", "Linear algebra")
	if *env.exitCode != 0 {
		t.Fatalf("start exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Session started: Math / Linear algebra") {
		t.Errorf("start output: %q", env.stdout.String())
	}

	env.stdout.Reset()
	showStatus()
	out := env.stdout.String()
	if !strings.Contains(out, "Studying: Math / Linear algebra") {
		t.Errorf("status output: %q", out)
	}

	env.stdout.Reset()
	finishSession()
	if *env.exitCode != 0 {
		t.Fatalf("finish exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Studied") {
		t.Errorf("finish output: %q", env.stdout.String())
	}

	// The session reached the service.
	recs := env.srv.Records("alice")
	if len(recs) != 1 {
		t.Fatalf("server has %d records, want 1", len(recs))
	}
	if recs[0].Category != "Math" || recs[0].Content != "Linear algebra" {
		t.Errorf("server record = %+v", recs[0])
	}

	// And the snapshot is gone.
	env.stdout.Reset()
	showStatus()
	if !strings.Contains(env.stdout.String(), "No session running") {
		t.Errorf("status after finish: %q", env.stdout.String())
	}
}

func TestStartTwiceFails(t *testing.T) {
	env := setupEnv(t)

	startSession("Math", "a")
	if *env.exitCode != 0 {
		t.Fatalf("start exited %d", *env.exitCode)
	}

	startSession("English", "b")
	if *env.exitCode != 1 {
		t.Errorf("second start exited %d, want 1", *env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "already active") {
		t.Errorf("stderr: %q", env.stderr.String())
	}
}

func TestPauseResume(t *testing.T) {
	env := setupEnv(t)

	startSession("Math", "a")
	env.stdout.Reset()

	pauseSession()
	if *env.exitCode != 0 {
		t.Fatalf("pause exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Session paused") {
		t.Errorf("pause output: %q", env.stdout.String())
	}

	// Pausing again fails.
	pauseSession()
	if *env.exitCode != 1 {
		t.Errorf("second pause exited %d, want 1", *env.exitCode)
	}
	*env.exitCode = 0

	env.stdout.Reset()
	resumeSession()
	if *env.exitCode != 0 {
		t.Fatalf("resume exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Session resumed") {
		t.Errorf("resume output: %q", env.stdout.String())
	}
}

func TestPauseWithoutSession(t *testing.T) {
	env := setupEnv(t)

	pauseSession()
	if *env.exitCode != 1 {
		t.Errorf("pause exited %d, want 1", *env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "No session running") {
		t.Errorf("stderr: %q", env.stderr.String())
	}
}

func TestLogCommand(t *testing.T) {
	env := setupEnv(t)

	logFlags.date = "2026/08/20"
	logFlags.start = "21:00"
	logFlags.end = "22:30"
	t.Cleanup(func() { logFlags.date, logFlags.start, logFlags.end = "", "", "" })

	logSession("Math", "practice exam")
	if *env.exitCode != 0 {
		t.Fatalf("log exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "1h 30m") {
		t.Errorf("log output: %q", env.stdout.String())
	}

	recs := env.srv.Records("alice")
	if len(recs) != 1 || recs[0].Duration != 90 {
		t.Errorf("server records = %+v", recs)
	}
}

func TestLogRejectsBadTimes(t *testing.T) {
	env := setupEnv(t)

	logFlags.start = "25:00"
	logFlags.end = "26:00"
	t.Cleanup(func() { logFlags.start, logFlags.end = "", "" })

	logSession("Math", "x")
	if *env.exitCode != 1 {
		t.Errorf("log exited %d, want 1", *env.exitCode)
	}
	if len(env.srv.Records("alice")) != 0 {
		t.Error("invalid record reached the server")
	}
}

func TestDeleteWithConfirmation(t *testing.T) {
	env := setupEnv(t)
	env.srv.Seed("alice", record.Record{
		Date: "2026/08/20", StartTime: "09:00", EndTime: "10:00",
		Duration: 60, Category: "Math", Content: "a",
	})
	id := env.srv.Records("alice")[0].ID

	env.stdin.WriteString("n\n")
	deleteRecord(id)
	if len(env.srv.Records("alice")) != 1 {
		t.Fatal("record deleted despite declined confirmation")
	}

	env.stdin.WriteString("y\n")
	deleteRecord(id)
	if len(env.srv.Records("alice")) != 0 {
		t.Error("record not deleted after confirmation")
	}
}

func TestSyncCommand(t *testing.T) {
	env := setupEnv(t)
	env.srv.Seed("alice",
		record.Record{Date: "2026/08/20", StartTime: "09:00", EndTime: "10:00", Duration: 60, Category: "Math", Content: "a"},
		record.Record{Date: "2026/08/21", StartTime: "09:00", EndTime: "10:00", Duration: 60, Category: "Math", Content: "b"},
	)

	syncRecords()
	if *env.exitCode != 0 {
		t.Fatalf("sync exited %d: %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Synced 2 records for alice") {
		t.Errorf("sync output: %q", env.stdout.String())
	}
}

func TestUserCommand(t *testing.T) {
	env := setupEnv(t)

	setUser("bob")
	if *env.exitCode != 0 {
		t.Fatalf("user exited %d: %s", *env.exitCode, env.stderr.String())
	}

	env.stdout.Reset()
	showUser()
	if got := strings.TrimSpace(env.stdout.String()); got != "bob" {
		t.Errorf("user output = %q, want bob", got)
	}
}

func TestReportCommand(t *testing.T) {
	env := setupEnv(t)
	env.srv.Seed("alice",
		record.Record{Date: "2026/08/20", StartTime: "09:00", EndTime: "10:30", Duration: 90, Category: "Math", Content: "a"},
		record.Record{Date: "2026/08/20", StartTime: "21:00", EndTime: "21:30", Duration: 30, Category: "English", Content: "b"},
	)

	showReport("day")
	if *env.exitCode != 0 {
		t.Fatalf("report exited %d: %s", *env.exitCode, env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "2026/08/20") || !strings.Contains(out, "2h") {
		t.Errorf("report output: %q", out)
	}
	if !strings.Contains(out, "Math") || !strings.Contains(out, "English") {
		t.Errorf("report missing categories: %q", out)
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{90, "1h 30m"},
		{135, "2h 15m"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.minutes); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61 * time.Minute, "01:01:00"},
		{10*time.Hour + 5*time.Minute + 9*time.Second, "10:05:09"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
