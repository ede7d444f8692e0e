// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Two drivers are registered by the blank imports below and chosen by
// config:
//
//	sqlite3: github.com/mattn/go-sqlite3 (cgo, the default)
//	sqlite:  modernc.org/sqlite (pure Go, for CGO_ENABLED=0 builds)
//
// The schema lives in migrations/*.sql, embedded into the binary and
// applied in file-name order every time the database is opened. Every
// statement is idempotent (IF NOT EXISTS).
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aanand-mishra/hostel-api/internal/config"
	"github.com/aanand-mishra/hostel-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// busyTimeoutMS is how long a statement waits for the write lock.
const busyTimeoutMS = 5000

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database described by cfg, applies the embedded
// migrations, and returns a ready-to-use *SQLite.
func New(cfg config.Storage) (*SQLite, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverSQLite3
	}
	if driver != config.DriverSQLite3 && driver != config.DriverSQLite {
		return nil, fmt.Errorf("sqlite.New: unsupported driver %q", driver)
	}

	inMemory := cfg.Path == ":memory:" || strings.Contains(cfg.Path, "mode=memory")
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("sqlite.New: create directory: %w", err)
		}
	}

	db, err := sql.Open(driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite has a single writer. One connection also keeps an in-memory
	// database alive: every new connection to ":memory:" is a new, empty DB.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS)}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.New: %s: %w", p, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func migrate(db *sql.DB) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// ListStudents returns all student rows as a slice.
func (s *SQLite) ListStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, room_number, bed_number, contact, payment_status FROM students",
	)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RoomNumber,
			&student.BedNumber,
			&student.Contact,
			&student.PaymentStatus,
		); err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}
	return students, nil
}

// CreateStudent inserts a new row into the students table.
// payment_status is left NULL until it is set through its own endpoint.
func (s *SQLite) CreateStudent(ctx context.Context, student types.NewStudent) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (name, room_number, bed_number, contact) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, student.Name, student.RoomNumber, student.BedNumber, student.Contact)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}
	return lastID, nil
}

// DeleteStudent removes a student row by primary key.
func (s *SQLite) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id); err != nil {
		return fmt.Errorf("DeleteStudent: exec: %w", err)
	}
	return nil
}

// UpdatePaymentStatus sets payment_status on one student.
func (s *SQLite) UpdatePaymentStatus(ctx context.Context, id int64, status types.Scalar) error {
	if _, err := s.Db.ExecContext(ctx,
		"UPDATE students SET payment_status = ? WHERE id = ?", status, id,
	); err != nil {
		return fmt.Errorf("UpdatePaymentStatus: exec: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Food menu
// ─────────────────────────────────────────────────────────────────────────────

// ListMenu returns the stored menu rows in table order.
func (s *SQLite) ListMenu(ctx context.Context) ([]types.MenuDay, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT day, breakfast, lunch, dinner FROM food_menu")
	if err != nil {
		return nil, fmt.Errorf("ListMenu: query: %w", err)
	}
	defer rows.Close()

	days := make([]types.MenuDay, 0, 7)
	for rows.Next() {
		var d types.MenuDay
		if err := rows.Scan(&d.Day, &d.Breakfast, &d.Lunch, &d.Dinner); err != nil {
			return nil, fmt.Errorf("ListMenu: scan row: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMenu: rows iteration: %w", err)
	}
	return days, nil
}

// ClearMenu deletes every menu row.
func (s *SQLite) ClearMenu(ctx context.Context) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM food_menu"); err != nil {
		return fmt.Errorf("ClearMenu: exec: %w", err)
	}
	return nil
}

// InsertMenuDay inserts a single menu row.
func (s *SQLite) InsertMenuDay(ctx context.Context, d types.MenuDay) error {
	if _, err := s.Db.ExecContext(ctx,
		"INSERT INTO food_menu (day, breakfast, lunch, dinner) VALUES (?, ?, ?, ?)",
		d.Day, d.Breakfast, d.Lunch, d.Dinner,
	); err != nil {
		return fmt.Errorf("InsertMenuDay: exec: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Feedback
// ─────────────────────────────────────────────────────────────────────────────

// ListFeedback returns entries newest first. created_at has millisecond
// resolution, so id breaks ties between entries written in the same tick.
func (s *SQLite) ListFeedback(ctx context.Context) ([]types.FeedbackEntry, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, room_number, message, created_at FROM feedback ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("ListFeedback: query: %w", err)
	}
	defer rows.Close()

	entries := make([]types.FeedbackEntry, 0)
	for rows.Next() {
		var e types.FeedbackEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.RoomNumber, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListFeedback: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListFeedback: rows iteration: %w", err)
	}
	return entries, nil
}

// CreateFeedback appends a feedback entry.
func (s *SQLite) CreateFeedback(ctx context.Context, in types.FeedbackInput) (int64, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO feedback (name, room_number, message) VALUES (?, ?, ?)",
		in.Name, in.RoomNumber, in.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateFeedback: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateFeedback: last insert id: %w", err)
	}
	return lastID, nil
}

// ClearFeedback deletes every feedback entry.
func (s *SQLite) ClearFeedback(ctx context.Context) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM feedback"); err != nil {
		return fmt.Errorf("ClearFeedback: exec: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Laundry
// ─────────────────────────────────────────────────────────────────────────────

// ListLaundry returns every laundry request.
func (s *SQLite) ListLaundry(ctx context.Context) ([]types.LaundryRequest, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, student_name, room_number, laundry_type, quantity, status FROM laundry",
	)
	if err != nil {
		return nil, fmt.Errorf("ListLaundry: query: %w", err)
	}
	defer rows.Close()

	requests := make([]types.LaundryRequest, 0)
	for rows.Next() {
		var l types.LaundryRequest
		if err := rows.Scan(&l.ID, &l.StudentName, &l.RoomNumber, &l.LaundryType, &l.Quantity, &l.Status); err != nil {
			return nil, fmt.Errorf("ListLaundry: scan row: %w", err)
		}
		requests = append(requests, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLaundry: rows iteration: %w", err)
	}
	return requests, nil
}

// CreateLaundry appends a laundry request; status takes its column default.
func (s *SQLite) CreateLaundry(ctx context.Context, in types.LaundryInput) (int64, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO laundry (student_name, room_number, laundry_type, quantity) VALUES (?, ?, ?, ?)",
		in.StudentName, in.RoomNumber, in.LaundryType, in.Quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateLaundry: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateLaundry: last insert id: %w", err)
	}
	return lastID, nil
}

// UpdateLaundryStatus sets the status of one laundry request.
func (s *SQLite) UpdateLaundryStatus(ctx context.Context, id int64, status types.Scalar) error {
	if _, err := s.Db.ExecContext(ctx,
		"UPDATE laundry SET status = ? WHERE id = ?", status, id,
	); err != nil {
		return fmt.Errorf("UpdateLaundryStatus: exec: %w", err)
	}
	return nil
}

// ClearLaundry deletes every laundry request.
func (s *SQLite) ClearLaundry(ctx context.Context) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM laundry"); err != nil {
		return fmt.Errorf("ClearLaundry: exec: %w", err)
	}
	return nil
}
