package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// DefaultHistoryLimit is used by ListForUser when limit is not positive.
const DefaultHistoryLimit = 20

// GenerationRepository handles generation history operations.
type GenerationRepository struct {
	pool *pgxpool.Pool
}

const generationColumns = `id, user_id, playlist_id, playlist_name, mood_name, targets, explanations, palette, track_count, created_at`

// Create inserts a generation, assigning an ID when it has none.
func (r *GenerationRepository) Create(ctx context.Context, gen *Generation) error {
	query := `
		INSERT INTO generations (id, user_id, playlist_id, playlist_name, mood_name, targets, explanations, palette, track_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	if gen.ID == uuid.Nil {
		gen.ID = uuid.New()
	}
	if gen.Explanations == nil {
		gen.Explanations = []string{}
	}
	if gen.Palette == nil {
		gen.Palette = []mood.PaletteColor{}
	}

	err := r.pool.QueryRow(ctx, query,
		gen.ID,
		gen.UserID,
		gen.PlaylistID,
		gen.PlaylistName,
		gen.MoodName,
		gen.Targets,
		gen.Explanations,
		gen.Palette,
		gen.TrackCount,
	).Scan(&gen.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting generation: %w", err)
	}
	return nil
}

// ListForUser returns the user's most recent generations, newest first.
func (r *GenerationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	query := `
		SELECT ` + generationColumns + `
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying user generations: %w", err)
	}
	defer rows.Close()

	gens := []Generation{}
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		gens = append(gens, *gen)
	}
	return gens, rows.Err()
}

func scanGeneration(row pgx.Row) (*Generation, error) {
	var gen Generation
	err := row.Scan(
		&gen.ID,
		&gen.UserID,
		&gen.PlaylistID,
		&gen.PlaylistName,
		&gen.MoodName,
		&gen.Targets,
		&gen.Explanations,
		&gen.Palette,
		&gen.TrackCount,
		&gen.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &gen, nil
}
