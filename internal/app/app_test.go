package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/league-registry/internal/config"
	"github.com/riskibarqy/league-registry/internal/interfaces/cli"
	"github.com/riskibarqy/league-registry/internal/platform/logging"
)

func TestNewImporterFactory_DryRunImportsIntoMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	content := "club,first_name,last_name,nationality,age,shirt_number,position\n" +
		"Arsenal,Bukayo,Saka,England,23,7,FW\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	cfg := config.Config{DBURL: "postgres://nobody@127.0.0.1:1/unused", DBConnectTimeout: time.Second}
	factory := NewImporterFactory(cfg, logging.NewNop())

	var stdout bytes.Buffer
	cmd := cli.NewImportCommand(factory, &stdout)
	cmd.SetArgs([]string{path, "--league", "Premier League", "--country-code", "ENG", "--dry-run"})

	var stderr bytes.Buffer
	if code := cli.Execute(context.Background(), cmd, &stderr); code != cli.ExitOK {
		t.Fatalf("unexpected exit code %d: %s", code, stderr.String())
	}

	want := "Created league: Premier League (ENG1)\n" +
		"Detected file encoding: ascii\n" +
		"Created player: Bukayo Saka\n" +
		"Player import completed\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestOpenDB_UnreachableDatabase(t *testing.T) {
	cfg := config.Config{
		DBURL:            "postgres://nobody@127.0.0.1:1/unused?sslmode=disable&connect_timeout=1",
		DBConnectTimeout: 2 * time.Second,
	}

	if _, err := OpenDB(context.Background(), cfg); err == nil {
		t.Fatalf("expected ping error for unreachable database")
	}
}
