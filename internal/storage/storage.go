// Package storage defines the Storage interface, the contract that any
// database backend must satisfy to work with this application.
//
// Handlers depend on the narrow per-resource interfaces (StudentStore,
// MenuStore, ...) so a test only has to fake the methods its handler
// actually calls. main.go builds one concrete Storage and passes it to
// every handler factory; there is no package-level database handle.
//
// Update and delete methods by id do not report whether a row matched:
// touching a missing id is not an error.
package storage

import (
	"context"

	"github.com/aanand-mishra/hostel-api/internal/types"
)

// StudentStore persists students.
type StudentStore interface {
	// ListStudents returns every student. Never nil.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// CreateStudent inserts a validated student and returns its new id.
	CreateStudent(ctx context.Context, s types.NewStudent) (int64, error)

	// DeleteStudent removes a student by id.
	DeleteStudent(ctx context.Context, id int64) error

	// UpdatePaymentStatus sets the payment status of a student.
	UpdatePaymentStatus(ctx context.Context, id int64, status types.Scalar) error
}

// MenuStore persists the weekly menu.
type MenuStore interface {
	// ListMenu returns the stored menu days. Never nil.
	ListMenu(ctx context.Context) ([]types.MenuDay, error)

	// ClearMenu deletes every menu day.
	ClearMenu(ctx context.Context) error

	// InsertMenuDay adds one menu day.
	InsertMenuDay(ctx context.Context, day types.MenuDay) error
}

// FeedbackStore persists feedback entries.
type FeedbackStore interface {
	// ListFeedback returns all entries, newest first. Never nil.
	ListFeedback(ctx context.Context) ([]types.FeedbackEntry, error)

	// CreateFeedback appends an entry and returns its new id.
	CreateFeedback(ctx context.Context, in types.FeedbackInput) (int64, error)

	// ClearFeedback deletes every entry.
	ClearFeedback(ctx context.Context) error
}

// LaundryStore persists laundry requests.
type LaundryStore interface {
	// ListLaundry returns every request. Never nil.
	ListLaundry(ctx context.Context) ([]types.LaundryRequest, error)

	// CreateLaundry appends a request and returns its new id.
	CreateLaundry(ctx context.Context, in types.LaundryInput) (int64, error)

	// UpdateLaundryStatus sets the status of a request.
	UpdateLaundryStatus(ctx context.Context, id int64, status types.Scalar) error

	// ClearLaundry deletes every request.
	ClearLaundry(ctx context.Context) error
}

// Storage is the full database contract implemented by each backend.
type Storage interface {
	StudentStore
	MenuStore
	FeedbackStore
	LaundryStore

	// Close releases the underlying connections.
	Close() error
}
