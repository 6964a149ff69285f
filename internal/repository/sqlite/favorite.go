package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/msomdec/reelnotes/internal/domain"
)

type favoriteRow struct {
	UserID    int64     `db:"user_id"`
	MovieID   string    `db:"movie_id"`
	Title     string    `db:"title"`
	PosterURL *string   `db:"poster_url"`
	Overview  *string   `db:"overview"`
	CreatedAt time.Time `db:"created_at"`
}

// FavoriteRepository implements domain.FavoriteRepository using SQLite.
type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db.SqlDB}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var rows []favoriteRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT user_id, movie_id, title, poster_url, overview, created_at
		 FROM favorites WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favs := make([]domain.Favorite, len(rows))
	for i, row := range rows {
		favs[i] = domain.Favorite{
			UserID:    row.UserID,
			MovieID:   row.MovieID,
			Title:     row.Title,
			PosterURL: row.PosterURL,
			Overview:  row.Overview,
			CreatedAt: row.CreatedAt,
		}
	}
	return favs, nil
}

// Add inserts the favorite, leaving an existing (user, movie) row untouched.
func (r *FavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) (bool, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, movie_id, title, poster_url, overview, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, movie_id) DO NOTHING`,
		fav.UserID, fav.MovieID, fav.Title, nullable(fav.PosterURL), nullable(fav.Overview), now,
	)
	if err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	fav.CreatedAt = now
	return true, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID int64, movieID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND movie_id = ?", userID, movieID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID int64, movieID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND movie_id = ?)`, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}
