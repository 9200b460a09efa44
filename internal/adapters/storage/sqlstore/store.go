package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose guarda dialecto y FS en estado global.
var gooseMu sync.Mutex

// Store envuelve *sql.DB y traduce placeholders `?` al dialecto.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open abre la base (pgx para postgres, modernc para sqlite), verifica la
// conexión y aplica las migraciones pendientes.
func Open(ctx context.Context, dialect, dsn string) (*Store, error) {
	var driverName string
	switch dialect {
	case DialectPostgres:
		driverName = "pgx"
	case DialectSQLite:
		driverName = "sqlite"
	default:
		return nil, errors.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	if dialect == DialectSQLite {
		// Una sola conexión: :memory: vive por conexión y sqlite serializa escrituras.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping db")
	}

	s := &Store{db: db, dialect: dialect}
	if dialect == DialectSQLite {
		for _, pragma := range []string{`PRAGMA foreign_keys = ON`, `PRAGMA busy_timeout = 5000`} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, errors.Wrap(err, "sqlite pragma")
			}
		}
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	gooseDialect := "postgres"
	if s.dialect == DialectSQLite {
		gooseDialect = "sqlite3"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return errors.Wrap(err, "set dialect")
	}
	if err := goose.Up(s.db, "migrations/"+s.dialect); err != nil {
		return errors.Wrap(err, "goose up")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dialect() string { return s.dialect }

func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// queryer lo cumplen *sql.DB y *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) exec(ctx context.Context, q queryer, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q queryer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q queryer, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.rebind(query), args...)
}

// inTx ejecuta fn en una transacción; rollback si fn falla.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

// rebind convierte `?` en `$n` para postgres. Las queries no llevan `?` literales.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// timeArg: postgres recibe time.Time (TIMESTAMPTZ); sqlite texto ordenable.
func (s *Store) timeArg(t time.Time) any {
	t = t.UTC()
	if s.dialect == DialectSQLite {
		return t.Format(timestampLayout)
	}
	return t
}
