package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/msomdec/reelnotes/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite connection pool and hands out repositories bound to it.
type DB struct {
	SqlDB *sqlx.DB
}

// New opens a SQLite database at the given path and configures it for use.
// WAL mode and foreign keys are set through the DSN so that every pooled
// connection gets them, including ones opened after a bad connection is dropped.
func New(dbPath string) (*DB, error) {
	db, err := sqlx.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

func dsn(dbPath string) string {
	return dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// Wrap builds a DB around an existing handle without touching its settings.
func Wrap(db *sqlx.DB) *DB {
	return &DB{SqlDB: db}
}

// Migrate applies any pending embedded migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository         { return NewUserRepository(d) }
func (d *DB) Favorites() *FavoriteRepository { return NewFavoriteRepository(d) }
func (d *DB) Reviews() *ReviewRepository     { return NewReviewRepository(d) }
