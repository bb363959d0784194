package sqldb

import (
	"context"
	"database/sql"

	"talent-match/internal/config"
	"talent-match/internal/database"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB adapts a *sql.DB to database.DB. The CLI opens it through the pgx
// stdlib driver and tests wrap a sqlmock connection.
type DB struct {
	db *sql.DB
}

func Wrap(db *sql.DB) *DB {
	return &DB{db: db}
}

func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.PoolMaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.PoolMaxConns))
	}
	if cfg.PoolMaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.PoolMaxConnLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return Wrap(db), nil
}

func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.db == nil {
		return database.ErrNilDB
	}
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if d == nil || d.db == nil {
		return 0, database.ErrNilDB
	}
	return rowsAffected(d.db.ExecContext(ctx, query, args...))
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if d == nil || d.db == nil {
		return nil, database.ErrNilDB
	}
	r, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: r}, nil
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if d == nil || d.db == nil {
		return errRow{err: database.ErrNilDB}
	}
	return d.db.QueryRowContext(ctx, query, args...)
}

func (d *DB) Begin(ctx context.Context) (database.Tx, error) {
	if d == nil || d.db == nil {
		return nil, database.ErrNilDB
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sqlTx{tx: tx}, nil
}

func (d *DB) SQLDB() *sql.DB {
	if d == nil {
		return nil
	}
	return d.db
}

type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return rowsAffected(t.tx.ExecContext(ctx, query, args...))
}

func (t sqlTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	r, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: r}, nil
}

func (t sqlTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t sqlTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t sqlTx) Rollback(context.Context) error {
	return t.tx.Rollback()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Close() {
	_ = r.rows.Close()
}

func (r sqlRows) Next() bool {
	return r.rows.Next()
}

func (r sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r sqlRows) Err() error {
	return r.rows.Err()
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
