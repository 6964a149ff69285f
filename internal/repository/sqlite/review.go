package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/msomdec/reelnotes/internal/domain"
)

type reviewRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	MovieID   string    `db:"movie_id"`
	Author    string    `db:"author"`
	Content   string    `db:"content"`
	Rating    *int      `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r reviewRow) toDomain() domain.Review {
	return domain.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Author:    r.Author,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const reviewSelect = `SELECT r.id, r.user_id, r.movie_id, u.name AS author, r.content, r.rating,
	r.created_at, r.updated_at
	FROM reviews r JOIN users u ON u.id = r.user_id`

// ReviewRepository implements domain.ReviewRepository using SQLite.
type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db.SqlDB}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, movie_id, content, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.UserID, review.MovieID, review.Content, nullable(review.Rating), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get review id: %w", err)
	}

	review.ID = id
	review.CreatedAt = now
	review.UpdatedAt = now
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var row reviewRow
	err := r.db.GetContext(ctx, &row, reviewSelect+` WHERE r.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	review := row.toDomain()
	return &review, nil
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	var rows []reviewRow
	err := r.db.SelectContext(ctx, &rows,
		reviewSelect+` WHERE r.movie_id = ? ORDER BY r.created_at DESC, r.id DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := make([]domain.Review, len(rows))
	for i, row := range rows {
		reviews[i] = row.toDomain()
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET content = ?, rating = ?, updated_at = ? WHERE id = ?`,
		review.Content, nullable(review.Rating), now, review.ID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}
	review.UpdatedAt = now
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return expectOneRow(result)
}
