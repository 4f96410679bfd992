package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/riskibarqy/league-registry/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	requests []usecase.ImportRequest
	summary  usecase.ImportSummary
	err      error
}

func (f *fakeImporter) Import(_ context.Context, req usecase.ImportRequest, reporter usecase.ImportReporter) (usecase.ImportSummary, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return usecase.ImportSummary{}, f.err
	}
	reporter.EncodingDetected("UTF-8")
	reporter.Completed(f.summary)
	return f.summary, nil
}

type factoryCall struct {
	dryRun bool
	closed bool
}

func newFactory(importer Importer, call *factoryCall) ImporterFactory {
	return func(_ context.Context, dryRun bool) (Importer, func() error, error) {
		call.dryRun = dryRun
		return importer, func() error {
			call.closed = true
			return nil
		}, nil
	}
}

func runCommand(t *testing.T, factory ImporterFactory, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewImportCommand(factory, &stdout)
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)

	code := Execute(context.Background(), cmd, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestImportCommand_PassesFlags(t *testing.T) {
	t.Parallel()

	importer := &fakeImporter{}
	var call factoryCall

	code, stdout, _ := runCommand(t, newFactory(importer, &call),
		"players.csv", "--league", "Premier League", "--country-code", "eng", "--tier", "2", "--dry-run")

	require.Equal(t, ExitOK, code)
	require.Len(t, importer.requests, 1)
	assert.Equal(t, usecase.ImportRequest{
		FilePath:    "players.csv",
		LeagueName:  "Premier League",
		CountryCode: "eng",
		Tier:        2,
	}, importer.requests[0])
	assert.True(t, call.dryRun)
	assert.True(t, call.closed)
	assert.Equal(t, "Detected file encoding: UTF-8\nPlayer import completed\n", stdout)
}

func TestImportCommand_DefaultTier(t *testing.T) {
	t.Parallel()

	importer := &fakeImporter{}
	var call factoryCall

	code, _, _ := runCommand(t, newFactory(importer, &call),
		"players.csv", "--league", "Premier League", "--country-code", "ENG")

	require.Equal(t, ExitOK, code)
	require.Len(t, importer.requests, 1)
	assert.Equal(t, 1, importer.requests[0].Tier)
	assert.False(t, call.dryRun)
}

func TestImportCommand_JSONSummary(t *testing.T) {
	t.Parallel()

	importer := &fakeImporter{summary: usecase.ImportSummary{
		File:           "players.csv",
		League:         "Premier League (ENG1)",
		Encoding:       "UTF-8",
		Rows:           3,
		PlayersCreated: 2,
		FailedRows:     1,
	}}
	var call factoryCall

	code, stdout, _ := runCommand(t, newFactory(importer, &call),
		"players.csv", "--league", "Premier League", "--country-code", "ENG", "--summary", "json")

	require.Equal(t, ExitOK, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Player import completed", lines[1])
	assert.JSONEq(t, `{
		"file": "players.csv",
		"league": "Premier League (ENG1)",
		"league_created": false,
		"encoding": "UTF-8",
		"rows": 3,
		"players_created": 2,
		"players_existing": 0,
		"teams_created": 0,
		"failed_rows": 1
	}`, lines[2])
}

func TestImportCommand_UsageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"--league", "L", "--country-code", "ENG"}},
		{name: "missing league", args: []string{"players.csv", "--country-code", "ENG"}},
		{name: "missing country code", args: []string{"players.csv", "--league", "L"}},
		{name: "unknown flag", args: []string{"players.csv", "--league", "L", "--country-code", "ENG", "--nope"}},
		{name: "bad tier", args: []string{"players.csv", "--league", "L", "--country-code", "ENG", "--tier", "11"}},
		{name: "bad summary", args: []string{"players.csv", "--league", "L", "--country-code", "ENG", "--summary", "xml"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			importer := &fakeImporter{}
			var call factoryCall
			code, _, stderr := runCommand(t, newFactory(importer, &call), tc.args...)

			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stderr, "Error:")
			assert.Empty(t, importer.requests)
		})
	}
}

func TestImportCommand_ImportErrors(t *testing.T) {
	t.Parallel()

	invalid := &fakeImporter{err: fmt.Errorf("%w: league: name is required", usecase.ErrInvalidInput)}
	var call factoryCall
	code, _, stderr := runCommand(t, newFactory(invalid, &call), "players.csv", "--league", " ", "--country-code", "ENG")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, "name is required")
	assert.True(t, call.closed)

	failing := &fakeImporter{err: fmt.Errorf("resolve league: %w", usecase.ErrDependencyUnavailable)}
	code, _, _ = runCommand(t, newFactory(failing, &call), "players.csv", "--league", "L", "--country-code", "ENG")
	assert.Equal(t, ExitError, code)
}

func TestImportCommand_FactoryError(t *testing.T) {
	t.Parallel()

	factory := func(context.Context, bool) (Importer, func() error, error) {
		return nil, nil, fmt.Errorf("connect database: refused")
	}
	code, _, stderr := runCommand(t, factory, "players.csv", "--league", "L", "--country-code", "ENG")

	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "connect database: refused")
}
