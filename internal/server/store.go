package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/five82/ticklist/internal/todo"
)

// ErrNotFound is returned for an id with no stored item.
var ErrNotFound = errors.New("item not found")

// Store keeps items in SQLite.
type Store struct {
	db *sql.DB
}

// MemoryDSN keeps the database for the lifetime of the process only.
const MemoryDSN = ":memory:"

// OpenStore opens (and creates if needed) the database at dsn.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serializes writers; a single connection also keeps an
	// in-memory database alive between requests.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS todos (
		id integer primary key autoincrement,
		text text not null,
		completed integer not null default 0
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns every item ordered by id.
func (s *Store) List(ctx context.Context) ([]todo.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, completed FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []todo.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Get returns the item with the given id.
func (s *Store) Get(ctx context.Context, id int64) (todo.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, text, completed FROM todos WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Item{}, ErrNotFound
	}
	return it, err
}

// Create inserts a new item and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, fields todo.Fields) (todo.Item, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO todos (text, completed) VALUES (?, ?)`, fields.Text, fields.Completed)
	if err != nil {
		return todo.Item{}, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return todo.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return todo.Item{ID: formatID(id), Text: fields.Text, Completed: fields.Completed}, nil
}

// Update replaces the text and completion flag of item id.
func (s *Store) Update(ctx context.Context, id int64, fields todo.Fields) (todo.Item, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET text = ?, completed = ? WHERE id = ?`, fields.Text, fields.Completed, id)
	if err != nil {
		return todo.Item{}, fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return todo.Item{}, ErrNotFound
	}
	return todo.Item{ID: formatID(id), Text: fields.Text, Completed: fields.Completed}, nil
}

// Delete removes item id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (todo.Item, error) {
	var (
		id        int64
		text      string
		completed bool
	)
	if err := row.Scan(&id, &text, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Item{}, err
		}
		return todo.Item{}, fmt.Errorf("scan item: %w", err)
	}
	return todo.Item{ID: formatID(id), Text: text, Completed: completed}, nil
}

func formatID(id int64) todo.ID {
	return todo.ID(strconv.FormatInt(id, 10))
}
