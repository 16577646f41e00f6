package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/config"
	"github.com/weiC29/prediction-web/internal/daemon"
	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/export"
	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, records int) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(filepath.Dir(cfg.Paths.DataDir), "config.toml")
	writeTestConfig(t, configPath, cfg)

	if records > 0 {
		store := testsupport.MustOpenSheet(t, cfg)
		testsupport.SeedRecords(t, store, records)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
api_bind = %q
`, cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.APIBind)
	testsupport.WriteFileString(t, path, content)
}

func runCommand(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIClaimSubmitStats(t *testing.T) {
	env := setupCLITestEnv(t, 1)

	out, err := runCommand(t, env, "claim", "--name", "Alice")
	if err != nil {
		t.Fatalf("claim: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Claimed row 0") {
		t.Fatalf("unexpected claim output:\n%s", out)
	}

	out, err = runCommand(t, env, "submit", "0",
		"--name", "Alice",
		"--email", "alice@example.org",
		"--outcome", "1",
		"--confidence", "Very confident",
		"--score", "30")
	if err != nil {
		t.Fatalf("submit: %v\n%s", err, out)
	}

	out, err = runCommand(t, env, "stats")
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Submitted") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}
}

func TestCLIClaimRequiresName(t *testing.T) {
	env := setupCLITestEnv(t, 1)
	if _, err := runCommand(t, env, "claim"); err == nil {
		t.Fatal("expected error without --name")
	}
}

func TestCLIClaimNoWork(t *testing.T) {
	env := setupCLITestEnv(t, 0)
	out, err := runCommand(t, env, "claim", "--name", "Alice")
	if err != nil {
		t.Fatalf("claim: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No records are available") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCLIImportThenExport(t *testing.T) {
	env := setupCLITestEnv(t, 0)
	csvPath := filepath.Join(t.TempDir(), "records.csv")
	testsupport.WriteFileString(t, csvPath, "age,sex\n44,F\n58,M\n")

	out, err := runCommand(t, env, "import", csvPath)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 2 record(s)") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	out, err = runCommand(t, env, "export")
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	header, rows, err := export.ReadCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 exported rows, got %d", len(rows))
	}
	if header[0] != "age" || !contains(header, "submission_status") {
		t.Fatalf("unexpected header: %v", header)
	}
}

func TestCLIImportRejectsAddr(t *testing.T) {
	env := setupCLITestEnv(t, 0)
	if _, err := runCommand(t, env, "--addr", "127.0.0.1:1", "import", "whatever.csv"); err == nil {
		t.Fatal("expected import with --addr to fail")
	}
}

func TestCLIConfigInit(t *testing.T) {
	env := setupCLITestEnv(t, 0)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}

	if _, err := runCommand(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}

func TestCLIRecordsAgainstDaemon(t *testing.T) {
	env := setupCLITestEnv(t, 2)

	// Stand the service up over HTTP the way `predict serve` would,
	// then point the CLI at it with --addr.
	store := testsupport.MustOpenSheet(t, env.cfg)
	coord := review.NewCoordinator(store, review.Options{Logger: logging.NewNop()})
	svc := api.NewService(store, coord, display.Spec{})
	d, err := daemon.New(env.cfg, store, coord, svc, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	defer d.Close()

	out, err := runCommand(t, env, "--addr", d.Addr(), "records")
	if err != nil {
		t.Fatalf("records: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 record(s)") {
		t.Fatalf("unexpected records output:\n%s", out)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
