// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package history records transformation runs in a SQL database. SQLite,
// PostgreSQL and MySQL are supported through Bun dialects. Password values
// are never part of a record.
package history // import "github.com/cfgscrub/cfgscrub/internal/history"

import (
	"context"
	"database/sql"
	"fmt"
	"os/user"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	// SQL drivers for the supported history backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Run is one recorded operation.
type Run struct {
	ID           string
	CreatedAt    time.Time
	Username     string
	Mode         string
	Source       string
	Output       string
	Octet        string
	LinesIn      int
	LinesOut     int
	Replacements int
	Digest       string
	// Error is the failure message, empty on success.
	Error string
}

// RunModel maps the runs table.
type RunModel struct {
	bun.BaseModel `bun:"table:runs"`
	ID            string    `bun:"id,pk,type:varchar(36)"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	Username      string    `bun:"username"`
	Mode          string    `bun:"mode,notnull"`
	Source        string    `bun:"source,type:text"`
	Output        string    `bun:"output,type:text"`
	Octet         string    `bun:"octet"`
	LinesIn       int       `bun:"lines_in"`
	LinesOut      int       `bun:"lines_out"`
	Replacements  int       `bun:"replacements"`
	Digest        string    `bun:"digest"`
	Error         string    `bun:"error,type:text"`
}

// Store is a history database.
type Store struct {
	bun *bun.DB
	now func() time.Time
}

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Open connects to dbType (sqlite, postgres, mysql) at dsn and creates the
// runs table when missing.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driverName := dbType
	// The pgx stdlib registers driver name "pgx".
	if dbType == "postgres" {
		driverName = "pgx"
	}
	var dialect schema.Dialect
	switch dbType {
	case "sqlite":
		dialect = sqlitedialect.New()
	case "postgres":
		dialect = pgdialect.New()
	case "mysql":
		dialect = mysqldialect.New()
	default:
		return nil, fmt.Errorf("unsupported history database type: '%s'", dbType)
	}

	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	if dbType == "sqlite" && strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{bun: bun.NewDB(sqlDB, dialect), now: time.Now}
	if _, err := s.bun.NewCreateTable().Model((*RunModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = s.bun.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.bun.Close()
}

// Record inserts r, filling ID, CreatedAt and Username when empty, and
// returns the stored record.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	if r.Username == "" {
		r.Username = currentUsername()
	}
	m := toModel(r)
	if _, err := s.bun.NewInsert().Model(&m).Exec(ctx); err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return r, nil
}

// Recent returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	var rows []RunModel
	q := s.bun.NewSelect().Model(&rows).OrderExpr("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	out := make([]Run, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromModel(m))
	}
	return out, nil
}

func toModel(r Run) RunModel {
	return RunModel{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Username:     r.Username,
		Mode:         r.Mode,
		Source:       r.Source,
		Output:       r.Output,
		Octet:        r.Octet,
		LinesIn:      r.LinesIn,
		LinesOut:     r.LinesOut,
		Replacements: r.Replacements,
		Digest:       r.Digest,
		Error:        r.Error,
	}
}

func fromModel(m RunModel) Run {
	return Run{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Username:     m.Username,
		Mode:         m.Mode,
		Source:       m.Source,
		Output:       m.Output,
		Octet:        m.Octet,
		LinesIn:      m.LinesIn,
		LinesOut:     m.LinesOut,
		Replacements: m.Replacements,
		Digest:       m.Digest,
		Error:        m.Error,
	}
}

// currentUsername returns the OS user, without a Windows domain prefix.
func currentUsername() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if parts := strings.Split(u.Username, `\`); len(parts) > 1 {
		return parts[1]
	}
	return u.Username
}
