// Package postgres implements storage.Storage on PostgreSQL through a
// pgx connection pool. This is the production backend; the sqlite package
// serves local development and tests.
//
// Loosely typed payload fields are stored in TEXT columns and bound as
// text, so any JSON scalar a client sends is accepted. room_number and
// quantity are read back with integer affinity ("7" is returned as 7), which
// matches the INTEGER columns of the sqlite backend.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanand-mishra/hostel-api/internal/config"
	"github.com/aanand-mishra/hostel-api/internal/types"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres is the pgx-backed implementation of storage.Storage.
type Postgres struct {
	Pool *pgxpool.Pool
}

// New connects to the database described by cfg, verifies the connection
// and applies the embedded migrations.
func New(ctx context.Context, cfg config.Postgres) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	p := &Postgres{Pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
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
		if _, err := p.Pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes every pooled connection.
func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}

// text binds a Scalar to a TEXT parameter: NULL or its textual form.
func text(s types.Scalar) *string {
	if s.IsNull() {
		return nil
	}
	v := s.String()
	return &v
}

// collect scans every row with scan, returning a non-nil slice.
func collect[T any](rows pgx.Rows, scan func(pgx.Rows, *T) error) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListStudents returns every student.
func (p *Postgres) ListStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.Pool.Query(ctx,
		"SELECT id, name, room_number, bed_number, contact, payment_status FROM students")
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	students, err := collect(rows, func(r pgx.Rows, s *types.Student) error {
		return r.Scan(&s.ID, &s.Name, &s.RoomNumber, &s.BedNumber, &s.Contact, &s.PaymentStatus)
	})
	if err != nil {
		return nil, fmt.Errorf("ListStudents: scan: %w", err)
	}
	return students, nil
}

// CreateStudent inserts a student and returns its id.
func (p *Postgres) CreateStudent(ctx context.Context, s types.NewStudent) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx,
		"INSERT INTO students (name, room_number, bed_number, contact) VALUES ($1, $2, $3, $4) RETURNING id",
		s.Name, s.RoomNumber, s.BedNumber, text(s.Contact),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: %w", err)
	}
	return id, nil
}

// DeleteStudent removes a student by id.
func (p *Postgres) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := p.Pool.Exec(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("DeleteStudent: %w", err)
	}
	return nil
}

// UpdatePaymentStatus sets payment_status on one student.
func (p *Postgres) UpdatePaymentStatus(ctx context.Context, id int64, status types.Scalar) error {
	if _, err := p.Pool.Exec(ctx,
		"UPDATE students SET payment_status = $1 WHERE id = $2", text(status), id); err != nil {
		return fmt.Errorf("UpdatePaymentStatus: %w", err)
	}
	return nil
}

// ListMenu returns the stored menu rows.
func (p *Postgres) ListMenu(ctx context.Context) ([]types.MenuDay, error) {
	rows, err := p.Pool.Query(ctx, "SELECT day, breakfast, lunch, dinner FROM food_menu")
	if err != nil {
		return nil, fmt.Errorf("ListMenu: query: %w", err)
	}
	days, err := collect(rows, func(r pgx.Rows, d *types.MenuDay) error {
		return r.Scan(&d.Day, &d.Breakfast, &d.Lunch, &d.Dinner)
	})
	if err != nil {
		return nil, fmt.Errorf("ListMenu: scan: %w", err)
	}
	return days, nil
}

// ClearMenu deletes every menu row.
func (p *Postgres) ClearMenu(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, "DELETE FROM food_menu"); err != nil {
		return fmt.Errorf("ClearMenu: %w", err)
	}
	return nil
}

// InsertMenuDay inserts one menu row.
func (p *Postgres) InsertMenuDay(ctx context.Context, d types.MenuDay) error {
	if _, err := p.Pool.Exec(ctx,
		"INSERT INTO food_menu (day, breakfast, lunch, dinner) VALUES ($1, $2, $3, $4)",
		text(d.Day), text(d.Breakfast), text(d.Lunch), text(d.Dinner)); err != nil {
		return fmt.Errorf("InsertMenuDay: %w", err)
	}
	return nil
}

// ListFeedback returns entries newest first.
func (p *Postgres) ListFeedback(ctx context.Context) ([]types.FeedbackEntry, error) {
	rows, err := p.Pool.Query(ctx,
		"SELECT id, name, room_number, message, created_at FROM feedback ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("ListFeedback: query: %w", err)
	}
	entries, err := collect(rows, func(r pgx.Rows, e *types.FeedbackEntry) error {
		if err := r.Scan(&e.ID, &e.Name, &e.RoomNumber, &e.Message, &e.CreatedAt); err != nil {
			return err
		}
		e.RoomNumber = e.RoomNumber.IntegerAffinity()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListFeedback: scan: %w", err)
	}
	return entries, nil
}

// CreateFeedback appends a feedback entry.
func (p *Postgres) CreateFeedback(ctx context.Context, in types.FeedbackInput) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx,
		"INSERT INTO feedback (name, room_number, message) VALUES ($1, $2, $3) RETURNING id",
		text(in.Name), text(in.RoomNumber), text(in.Message),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateFeedback: %w", err)
	}
	return id, nil
}

// ClearFeedback deletes every feedback entry.
func (p *Postgres) ClearFeedback(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, "DELETE FROM feedback"); err != nil {
		return fmt.Errorf("ClearFeedback: %w", err)
	}
	return nil
}

// ListLaundry returns every laundry request.
func (p *Postgres) ListLaundry(ctx context.Context) ([]types.LaundryRequest, error) {
	rows, err := p.Pool.Query(ctx,
		"SELECT id, student_name, room_number, laundry_type, quantity, status FROM laundry")
	if err != nil {
		return nil, fmt.Errorf("ListLaundry: query: %w", err)
	}
	requests, err := collect(rows, func(r pgx.Rows, l *types.LaundryRequest) error {
		if err := r.Scan(&l.ID, &l.StudentName, &l.RoomNumber, &l.LaundryType, &l.Quantity, &l.Status); err != nil {
			return err
		}
		l.RoomNumber = l.RoomNumber.IntegerAffinity()
		l.Quantity = l.Quantity.IntegerAffinity()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListLaundry: scan: %w", err)
	}
	return requests, nil
}

// CreateLaundry appends a laundry request.
func (p *Postgres) CreateLaundry(ctx context.Context, in types.LaundryInput) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx,
		"INSERT INTO laundry (student_name, room_number, laundry_type, quantity) VALUES ($1, $2, $3, $4) RETURNING id",
		text(in.StudentName), text(in.RoomNumber), text(in.LaundryType), text(in.Quantity),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateLaundry: %w", err)
	}
	return id, nil
}

// UpdateLaundryStatus sets the status of one laundry request.
func (p *Postgres) UpdateLaundryStatus(ctx context.Context, id int64, status types.Scalar) error {
	if _, err := p.Pool.Exec(ctx,
		"UPDATE laundry SET status = $1 WHERE id = $2", text(status), id); err != nil {
		return fmt.Errorf("UpdateLaundryStatus: %w", err)
	}
	return nil
}

// ClearLaundry deletes every laundry request.
func (p *Postgres) ClearLaundry(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, "DELETE FROM laundry"); err != nil {
		return fmt.Errorf("ClearLaundry: %w", err)
	}
	return nil
}
