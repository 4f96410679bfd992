package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-registry/internal/domain/league"
	"github.com/riskibarqy/league-registry/internal/domain/player"
	"github.com/riskibarqy/league-registry/internal/domain/team"
	"github.com/riskibarqy/league-registry/internal/platform/charset"
	"github.com/riskibarqy/league-registry/internal/platform/logging"
	"github.com/riskibarqy/league-registry/internal/rosterfile"
	"go.opentelemetry.io/otel/attribute"
)

// ImportRequest names the roster file and the league every row belongs to.
type ImportRequest struct {
	FilePath    string
	LeagueName  string
	CountryCode string
	Tier        int
}

// ImportSummary counts the outcome of one import run.
type ImportSummary struct {
	File            string `json:"file"`
	League          string `json:"league"`
	LeagueCreated   bool   `json:"league_created"`
	Encoding        string `json:"encoding"`
	Rows            int    `json:"rows"`
	PlayersCreated  int    `json:"players_created"`
	PlayersExisting int    `json:"players_existing"`
	TeamsCreated    int    `json:"teams_created"`
	FailedRows      int    `json:"failed_rows"`
}

// ImportReporter receives the user facing progress of an import.
type ImportReporter interface {
	LeagueResolved(item league.League, created bool)
	EncodingDetected(name string)
	PlayerImported(item player.Player, created bool)
	RowFailed(row string, err error)
	Completed(summary ImportSummary)
}

type ImportService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewImportService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// EnsureLeague resolves the league named by the import, creating it when
// absent.
func (s *ImportService) EnsureLeague(ctx context.Context, name, countryCode string, tier int) (_ league.League, _ bool, err error) {
	ctx, span := startSpan(ctx, "EnsureLeague",
		attribute.String("league.name", name),
		attribute.Int("league.tier", tier),
	)
	defer func() { finishSpan(span, err) }()

	item := league.League{
		Name:        strings.TrimSpace(name),
		CountryCode: strings.ToUpper(strings.TrimSpace(countryCode)),
		Tier:        tier,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, false, fmt.Errorf("%w: league: %v", ErrInvalidInput, err)
	}

	resolved, created, err := s.leagueRepo.GetOrCreate(ctx, item)
	if err != nil {
		if errors.Is(err, league.ErrConflict) {
			return league.League{}, false, errors.Wrapf(err, "resolve league %s", item)
		}
		return league.League{}, false, errors.Mark(errors.Wrapf(err, "resolve league %s", item), ErrDependencyUnavailable)
	}

	return resolved, created, nil
}

// Import ensures the league exists, then get-or-creates a team and a player
// for every row of the roster file. Setup failures abort with an error; row
// failures are reported and skipped.
func (s *ImportService) Import(ctx context.Context, req ImportRequest, reporter ImportReporter) (_ ImportSummary, err error) {
	ctx, span := startSpan(ctx, "Import", attribute.String("import.file", req.FilePath))
	defer func() { finishSpan(span, err) }()

	req.FilePath = strings.TrimSpace(req.FilePath)
	if req.FilePath == "" {
		return ImportSummary{}, fmt.Errorf("%w: csv file path is required", ErrInvalidInput)
	}

	summary := ImportSummary{File: req.FilePath}

	lg, created, err := s.EnsureLeague(ctx, req.LeagueName, req.CountryCode, req.Tier)
	if err != nil {
		return summary, err
	}
	summary.League = lg.String()
	summary.LeagueCreated = created
	reporter.LeagueResolved(lg, created)

	encoding, err := charset.DetectFile(req.FilePath)
	if err != nil {
		return summary, markFileErr(err)
	}
	summary.Encoding = encoding
	reporter.EncodingDetected(encoding)

	file, err := os.Open(req.FilePath)
	if err != nil {
		return summary, markFileErr(errors.Wrap(err, "open csv file"))
	}
	defer file.Close()

	decoded, err := charset.NewReader(file, encoding)
	if err != nil {
		return summary, errors.Mark(errors.Wrapf(err, "decode %s", req.FilePath), ErrInvalidInput)
	}
	rows, err := rosterfile.NewReader(decoded)
	if err != nil {
		return summary, errors.Mark(errors.Wrapf(err, "parse %s", req.FilePath), ErrInvalidInput)
	}
	if missing := rows.MissingColumns(rosterfile.RequiredColumns...); len(missing) > 0 {
		s.logger.WarnContext(ctx, "roster header is missing columns", "file", req.FilePath, "missing", missing)
	}

	s.logger.InfoContext(ctx, "player import started",
		"file", req.FilePath,
		"league", lg.String(),
		"encoding", encoding,
	)

	for {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "import interrupted")
		}

		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, rosterfile.ErrRead) {
			return summary, errors.Wrapf(err, "parse %s", req.FilePath)
		}
		summary.Rows++
		if err != nil {
			s.failRow(ctx, &summary, reporter, row, err)
			continue
		}

		outcome, err := s.importRow(ctx, lg, row)
		if err != nil {
			s.failRow(ctx, &summary, reporter, row, err)
			continue
		}
		if outcome.teamCreated {
			summary.TeamsCreated++
		}
		if outcome.playerCreated {
			summary.PlayersCreated++
		} else {
			summary.PlayersExisting++
		}
		reporter.PlayerImported(outcome.player, outcome.playerCreated)
	}

	span.SetAttributes(
		attribute.Int("import.rows", summary.Rows),
		attribute.Int("import.failed_rows", summary.FailedRows),
	)
	s.logger.InfoContext(ctx, "player import completed",
		"rows", summary.Rows,
		"players_created", summary.PlayersCreated,
		"players_existing", summary.PlayersExisting,
		"teams_created", summary.TeamsCreated,
		"failed_rows", summary.FailedRows,
	)
	reporter.Completed(summary)

	return summary, nil
}

type rowOutcome struct {
	player        player.Player
	playerCreated bool
	teamCreated   bool
}

func (s *ImportService) importRow(ctx context.Context, lg league.League, row rosterfile.Row) (rowOutcome, error) {
	fields, err := readRowFields(row)
	if err != nil {
		return rowOutcome{}, err
	}

	club := team.Team{LeagueID: lg.ID, Name: fields[rosterfile.ColumnClub]}
	if err := club.Validate(); err != nil {
		return rowOutcome{}, errors.Wrap(err, "team")
	}
	club, teamCreated, err := s.teamRepo.GetOrCreate(ctx, club)
	if err != nil {
		return rowOutcome{}, errors.Wrap(err, "resolve team")
	}

	age, err := parseOptionalInt(fields[rosterfile.ColumnAge])
	if err != nil {
		return rowOutcome{}, errors.Wrap(err, "age")
	}
	shirtNumber, err := parseOptionalInt(fields[rosterfile.ColumnShirtNumber])
	if err != nil {
		return rowOutcome{}, errors.Wrap(err, "shirt_number")
	}

	teamID := club.ID
	item := player.Player{
		TeamID:      &teamID,
		FirstName:   fields[rosterfile.ColumnFirstName],
		LastName:    fields[rosterfile.ColumnLastName],
		Nationality: fields[rosterfile.ColumnNationality],
		Age:         age,
		ShirtNumber: shirtNumber,
		Position:    player.Position(strings.ToUpper(fields[rosterfile.ColumnPosition])),
	}
	if err := item.ValidateIdentity(); err != nil {
		return rowOutcome{}, errors.Wrap(err, "player")
	}

	existing, found, err := s.playerRepo.GetByName(ctx, item.FirstName, item.LastName)
	if err != nil {
		return rowOutcome{}, errors.Wrap(err, "resolve player")
	}
	if found {
		return rowOutcome{player: existing, teamCreated: teamCreated}, nil
	}

	// Row attributes only apply to a new player, so they are checked here.
	if err := item.Validate(); err != nil {
		return rowOutcome{}, errors.Wrap(err, "player")
	}
	resolved, created, err := s.playerRepo.GetOrCreate(ctx, item)
	if err != nil {
		return rowOutcome{}, errors.Wrap(err, "resolve player")
	}
	if created {
		s.logger.DebugContext(ctx, "player created",
			"line", row.Line,
			"player", resolved.String(),
			"team", club.Name,
			"position", resolved.Position.Label(),
		)
	}

	return rowOutcome{player: resolved, playerCreated: created, teamCreated: teamCreated}, nil
}

func (s *ImportService) failRow(ctx context.Context, summary *ImportSummary, reporter ImportReporter, row rosterfile.Row, err error) {
	summary.FailedRows++
	s.logger.WarnContext(ctx, "player row skipped", "line", row.Line, "error", err)
	reporter.RowFailed(row.String(), err)
}

func readRowFields(row rosterfile.Row) (map[string]string, error) {
	out := make(map[string]string, len(rosterfile.RequiredColumns))
	for _, column := range rosterfile.RequiredColumns {
		value, err := row.Get(column)
		if err != nil {
			return nil, err
		}
		out[column] = value
	}
	return out, nil
}

// parseOptionalInt returns nil unless raw is made of ASCII digits only.
func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil, nil
		}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &v, nil
}

func markFileErr(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return errors.Mark(err, ErrNotFound)
	}
	return errors.Mark(err, ErrInvalidInput)
}
