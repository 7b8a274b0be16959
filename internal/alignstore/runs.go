package alignstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vidalign/internal/alignment"
)

// DefaultListLimit bounds ListRuns when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Run is one recorded alignment of a video against a subtitle file.
type Run struct {
	ID           uuid.UUID
	VideoPath    string
	SubtitlePath string
	CreatedAt    time.Time
	Report       alignment.Report
	// Alignments is empty for rows returned by ListRuns.
	Alignments []alignment.ContentAlignment
}

// NewRun builds a Run with a fresh identifier and the report computed from alignments.
func NewRun(videoPath, subtitlePath string, alignments []alignment.ContentAlignment) Run {
	return Run{
		ID:           uuid.New(),
		VideoPath:    videoPath,
		SubtitlePath: subtitlePath,
		CreatedAt:    time.Now().UTC(),
		Report:       alignment.NewReport(alignments),
		Alignments:   alignments,
	}
}

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runSummaryColumns = "id, video_path, subtitle_path, created_at, segment_count, average_confidence, warning_count, total_warnings, scene_coverage, high_count, medium_count, low_count"

// SaveRun inserts run, assigning an ID and creation time when missing.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	alignments := run.Alignments
	if alignments == nil {
		alignments = []alignment.ContentAlignment{}
	}
	payload, err := json.Marshal(alignments)
	if err != nil {
		return fmt.Errorf("marshal alignments: %w", err)
	}
	r := run.Report
	err = s.execWithRetry(ctx,
		`INSERT INTO runs (`+runSummaryColumns+`, alignments_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.VideoPath,
		nullableString(run.SubtitlePath),
		run.CreatedAt.UTC().Format(createdAtLayout),
		r.Total,
		r.AverageConfidence,
		r.WarningCount,
		r.TotalWarnings,
		r.SceneCoverage,
		r.High,
		r.Medium,
		r.Low,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first, without their alignments.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runSummaryColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches one run with its alignments. A missing run returns nil, nil.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	ctx = ensureContext(ctx)
	var payload sql.NullString
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runSummaryColumns+`, alignments_json FROM runs WHERE id = ?`, id.String())
	run, err := scanRun(row, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.Alignments = []alignment.ContentAlignment{}
	if payload.Valid && payload.String != "" {
		if err := json.Unmarshal([]byte(payload.String), &run.Alignments); err != nil {
			return nil, fmt.Errorf("decode alignments for run %s: %w", id, err)
		}
	}
	return run, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }, payload *sql.NullString) (*Run, error) {
	var (
		idRaw        string
		videoPath    string
		subtitlePath sql.NullString
		createdRaw   string
		r            alignment.Report
	)
	dest := []any{
		&idRaw, &videoPath, &subtitlePath, &createdRaw,
		&r.Total, &r.AverageConfidence, &r.WarningCount, &r.TotalWarnings, &r.SceneCoverage,
		&r.High, &r.Medium, &r.Low,
	}
	if payload != nil {
		dest = append(dest, payload)
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idRaw)
	if err != nil {
		return nil, fmt.Errorf("parse run id %q: %w", idRaw, err)
	}
	createdAt, err := time.Parse(createdAtLayout, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	if r.Total > 0 {
		r.WarningPercentage = float64(r.WarningCount) / float64(r.Total) * 100
	}
	return &Run{
		ID:           id,
		VideoPath:    videoPath,
		SubtitlePath: subtitlePath.String,
		CreatedAt:    createdAt,
		Report:       r,
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
