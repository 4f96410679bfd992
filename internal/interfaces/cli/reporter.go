package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/riskibarqy/league-registry/internal/domain/league"
	"github.com/riskibarqy/league-registry/internal/domain/player"
	"github.com/riskibarqy/league-registry/internal/usecase"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// ConsoleReporter prints import progress one line per event.
type ConsoleReporter struct {
	out   io.Writer
	color bool
}

var _ usecase.ImportReporter = (*ConsoleReporter)(nil)

// NewConsoleReporter colors its output only when out is a terminal.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out, color: isTerminal(out)}
}

func (r *ConsoleReporter) LeagueResolved(item league.League, created bool) {
	if created {
		r.printf(colorGreen, "Created league: %s", item)
		return
	}
	r.printf(colorYellow, "Using existing league: %s", item)
}

func (r *ConsoleReporter) EncodingDetected(name string) {
	r.printf("", "Detected file encoding: %s", name)
}

func (r *ConsoleReporter) PlayerImported(item player.Player, created bool) {
	if created {
		r.printf(colorGreen, "Created player: %s", item)
		return
	}
	r.printf(colorYellow, "Player already exists: %s", item)
}

func (r *ConsoleReporter) RowFailed(row string, err error) {
	r.printf(colorRed, "Error processing row: %s. Error: %v", row, err)
}

func (r *ConsoleReporter) Completed(usecase.ImportSummary) {
	r.printf(colorGreen, "Player import completed")
}

func (r *ConsoleReporter) printf(color, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if r.color && color != "" {
		line = color + line + colorReset
	}
	fmt.Fprintln(r.out, line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
