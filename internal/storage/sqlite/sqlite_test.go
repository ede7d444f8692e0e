package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/hostel-api/internal/config"
	"github.com/aanand-mishra/hostel-api/internal/types"
)

// openTestDB opens an in-memory database with the given driver.
func openTestDB(t *testing.T, driver string) *SQLite {
	t.Helper()

	db, err := New(config.Storage{Driver: driver, Path: ":memory:"})
	if err != nil {
		t.Fatalf("New(%s): %v", driver, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// forEachDriver runs fn against both registered SQLite drivers.
func forEachDriver(t *testing.T, fn func(t *testing.T, db *SQLite)) {
	for _, driver := range []string{config.DriverSQLite3, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			fn(t, openTestDB(t, driver))
		})
	}
}

func TestStudents(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *SQLite) {
		ctx := context.Background()

		id, err := db.CreateStudent(ctx, types.NewStudent{
			Name:       "Asha",
			RoomNumber: 5,
			BedNumber:  2,
			Contact:    types.Text("555-1234"),
		})
		if err != nil {
			t.Fatalf("CreateStudent: %v", err)
		}
		if id <= 0 {
			t.Fatalf("id = %d, want > 0", id)
		}

		students, err := db.ListStudents(ctx)
		if err != nil {
			t.Fatalf("ListStudents: %v", err)
		}
		want := types.Student{
			ID:         id,
			Name:       "Asha",
			RoomNumber: 5,
			BedNumber:  2,
			Contact:    types.Text("555-1234"),
		}
		if len(students) != 1 || students[0] != want {
			t.Fatalf("ListStudents = %+v, want [%+v]", students, want)
		}

		if err := db.UpdatePaymentStatus(ctx, id, types.Text("paid")); err != nil {
			t.Fatalf("UpdatePaymentStatus: %v", err)
		}
		students, _ = db.ListStudents(ctx)
		if students[0].PaymentStatus != types.Text("paid") {
			t.Errorf("PaymentStatus = %q, want paid", students[0].PaymentStatus)
		}

		// Missing ids are not an error.
		if err := db.UpdatePaymentStatus(ctx, 999, types.Text("paid")); err != nil {
			t.Errorf("UpdatePaymentStatus(999): %v", err)
		}
		if err := db.DeleteStudent(ctx, 999); err != nil {
			t.Errorf("DeleteStudent(999): %v", err)
		}

		if err := db.DeleteStudent(ctx, id); err != nil {
			t.Fatalf("DeleteStudent: %v", err)
		}
		students, _ = db.ListStudents(ctx)
		if students == nil || len(students) != 0 {
			t.Errorf("after delete ListStudents = %#v, want empty non-nil", students)
		}
	})
}

func TestMenu(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *SQLite) {
		ctx := context.Background()

		for _, day := range []string{"Monday", "Tuesday"} {
			if err := db.InsertMenuDay(ctx, types.MenuDay{
				Day:       types.Text(day),
				Breakfast: types.Text("Poha"),
				Lunch:     types.Text("Dal"),
			}); err != nil {
				t.Fatalf("InsertMenuDay: %v", err)
			}
		}

		days, err := db.ListMenu(ctx)
		if err != nil {
			t.Fatalf("ListMenu: %v", err)
		}
		if len(days) != 2 {
			t.Fatalf("len = %d, want 2", len(days))
		}
		if !days[0].Dinner.IsNull() {
			t.Errorf("unset dinner should be null, got %q", days[0].Dinner)
		}

		if err := db.ClearMenu(ctx); err != nil {
			t.Fatalf("ClearMenu: %v", err)
		}
		days, _ = db.ListMenu(ctx)
		if len(days) != 0 {
			t.Errorf("after clear len = %d", len(days))
		}
	})
}

func TestFeedbackNewestFirst(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *SQLite) {
		ctx := context.Background()

		first, err := db.CreateFeedback(ctx, types.FeedbackInput{
			Name:       types.Text("Ravi"),
			RoomNumber: types.Integer(3),
			Message:    types.Text("Fan is broken"),
		})
		if err != nil {
			t.Fatalf("CreateFeedback: %v", err)
		}
		second, err := db.CreateFeedback(ctx, types.FeedbackInput{Message: types.Text("Great food")})
		if err != nil {
			t.Fatalf("CreateFeedback: %v", err)
		}

		entries, err := db.ListFeedback(ctx)
		if err != nil {
			t.Fatalf("ListFeedback: %v", err)
		}
		if len(entries) != 2 || entries[0].ID != second || entries[1].ID != first {
			t.Fatalf("ListFeedback order = %+v", entries)
		}
		if entries[0].CreatedAt.IsZero() {
			t.Error("created_at should be set by the store")
		}
		if !entries[0].Name.IsNull() {
			t.Errorf("absent name should be null, got %q", entries[0].Name)
		}
		if entries[1].RoomNumber != types.Integer(3) {
			t.Errorf("RoomNumber = %q", entries[1].RoomNumber)
		}

		if err := db.ClearFeedback(ctx); err != nil {
			t.Fatalf("ClearFeedback: %v", err)
		}
		entries, _ = db.ListFeedback(ctx)
		if len(entries) != 0 {
			t.Errorf("after clear len = %d", len(entries))
		}
	})
}

func TestLaundry(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *SQLite) {
		ctx := context.Background()

		id, err := db.CreateLaundry(ctx, types.LaundryInput{
			StudentName: types.Text("Meera"),
			RoomNumber:  types.Text("7"),
			LaundryType: types.Text("wash & fold"),
			Quantity:    types.Integer(4),
		})
		if err != nil {
			t.Fatalf("CreateLaundry: %v", err)
		}

		requests, err := db.ListLaundry(ctx)
		if err != nil {
			t.Fatalf("ListLaundry: %v", err)
		}
		if len(requests) != 1 {
			t.Fatalf("len = %d", len(requests))
		}
		got := requests[0]
		if got.ID != id || got.Status != types.Text("pending") || got.Quantity != types.Integer(4) {
			t.Errorf("request = %+v", got)
		}

		if err := db.UpdateLaundryStatus(ctx, id, types.Text("done")); err != nil {
			t.Fatalf("UpdateLaundryStatus: %v", err)
		}
		if err := db.UpdateLaundryStatus(ctx, 999, types.Text("done")); err != nil {
			t.Errorf("UpdateLaundryStatus(999): %v", err)
		}
		requests, _ = db.ListLaundry(ctx)
		if requests[0].Status != types.Text("done") {
			t.Errorf("Status = %q, want done", requests[0].Status)
		}

		if err := db.ClearLaundry(ctx); err != nil {
			t.Fatalf("ClearLaundry: %v", err)
		}
		requests, _ = db.ListLaundry(ctx)
		if len(requests) != 0 {
			t.Errorf("after clear len = %d", len(requests))
		}
	})
}

func TestNewOnDiskCreatesDirectoryAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hostel.db")
	cfg := config.Storage{Driver: config.DriverSQLite3, Path: path}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := db.CreateFeedback(context.Background(), types.FeedbackInput{Message: types.Text("hi")}); err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	db.Close()

	// Migrations are idempotent; data survives a reopen.
	db, err = New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	entries, err := db.ListFeedback(context.Background())
	if err != nil || len(entries) != 1 {
		t.Fatalf("ListFeedback = %v, %v", entries, err)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New(config.Storage{Driver: "postgres", Path: ":memory:"}); err == nil {
		t.Error("expected error for non-sqlite driver")
	}
}

func TestLaundryNumericText(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *SQLite) {
		ctx := context.Background()

		if _, err := db.CreateLaundry(ctx, types.LaundryInput{
			RoomNumber: types.Text("7"),
			Quantity:   types.Text("four"),
		}); err != nil {
			t.Fatalf("CreateLaundry: %v", err)
		}
		requests, err := db.ListLaundry(ctx)
		if err != nil || len(requests) != 1 {
			t.Fatalf("ListLaundry = %+v, %v", requests, err)
		}
		if got := requests[0].RoomNumber; got != types.Integer(7) {
			t.Errorf("room_number = %v, want 7", got)
		}
		if got := requests[0].Quantity; got != types.Text("four") {
			t.Errorf("quantity = %v, want \"four\"", got)
		}
	})
}
