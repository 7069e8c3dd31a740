package variables

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS variables (
	name  TEXT PRIMARY KEY,
	kind  INTEGER NOT NULL,
	value TEXT NOT NULL
);`

// SQLite persists top level variables in a sqlite database. Scalars are stored as text, arrays as
// a YAML list of records.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("empty variables database path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New(err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.New(err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (store *SQLite) Close() error {
	return errors.WithStackTrace(store.db.Close())
}

// Put stores a scalar under a top level name.
func (store *SQLite) Put(ctx context.Context, name, value string) error {
	if !validKey(name) {
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	}

	return store.put(ctx, name, KindScalar, value)
}

// PutArray stores records under a top level name.
func (store *SQLite) PutArray(ctx context.Context, name string, records []*config.Config) error {
	if !validKey(name) {
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	}

	list := make([]any, 0, len(records))
	for _, record := range records {
		list = append(list, record.ToMap())
	}

	out, err := yaml.Marshal(list)
	if err != nil {
		return errors.New(err)
	}

	return store.put(ctx, name, KindArray, string(out))
}

func (store *SQLite) put(ctx context.Context, name string, kind Kind, value string) error {
	const query = `INSERT INTO variables (name, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET kind = excluded.kind, value = excluded.value`

	if _, err := store.db.ExecContext(ctx, query, name, int(kind), value); err != nil {
		return errors.New(err)
	}

	return nil
}

// Get implements Store. The first path element selects the row, the rest of the path is resolved
// inside it.
func (store *SQLite) Get(name string) (Value, error) {
	return store.Lookup(context.Background(), name)
}

// Lookup is Get with a context.
func (store *SQLite) Lookup(ctx context.Context, name string) (Value, error) {
	path, err := parsePath(name)
	if err != nil {
		return Value{}, err
	}

	root := config.New()

	var (
		kind  int
		value string
	)

	row := store.db.QueryRowContext(ctx, `SELECT kind, value FROM variables WHERE name = ?`, path[0].key)

	switch err := row.Scan(&kind, &value); {
	case errors.Is(err, sql.ErrNoRows):
		return Value{}, nil
	case err != nil:
		return Value{}, errors.New(err)
	}

	if err := addRow(root, path[0].key, Kind(kind), value); err != nil {
		return Value{}, err
	}

	return resolve(root, path), nil
}

// Load copies every stored variable into mem.
func (store *SQLite) Load(ctx context.Context, mem *Memory) error {
	rows, err := store.db.QueryContext(ctx, `SELECT name, kind, value FROM variables ORDER BY name`)
	if err != nil {
		return errors.New(err)
	}
	defer rows.Close()

	root := config.New()

	for rows.Next() {
		var (
			name  string
			kind  int
			value string
		)

		if err := rows.Scan(&name, &kind, &value); err != nil {
			return errors.New(err)
		}

		if err := addRow(root, name, Kind(kind), value); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return errors.New(err)
	}

	for _, attr := range root.Attributes() {
		if err := mem.Set(attr.Key, attr.Value); err != nil {
			return err
		}
	}

	names := map[string]bool{}

	for _, child := range root.Children() {
		if names[child.Key] {
			continue
		}

		names[child.Key] = true

		if err := mem.SetArray(child.Key, root.ChildrenByKey(child.Key)); err != nil {
			return err
		}
	}

	return nil
}

func addRow(root *config.Config, name string, kind Kind, value string) error {
	if kind != KindArray {
		root.Set(name, value)
		return nil
	}

	var list []any

	if err := yaml.Unmarshal([]byte(value), &list); err != nil {
		return errors.Errorf("decode variable %s: %w", name, err)
	}

	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return errors.Errorf("decode variable %s: record is %T", name, item)
		}

		root.AppendChild(name, config.FromMap(record))
	}

	return nil
}
