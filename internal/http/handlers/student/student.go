// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function accepts its dependencies (the store) and returns
// a handler with the exact signature the router needs:
//
//	r.Post("/api/students", student.New(store))
//	//                                 ^^^^^^^^^^^^
//	//                New(store) is called ONCE at startup.
//	//                The returned func runs on EVERY request.
//
// Every student route sits behind the auth gate.
package student

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/hostel-api/internal/storage"
	"github.com/aanand-mishra/hostel-api/internal/types"
	"github.com/aanand-mishra/hostel-api/internal/utils/request"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
	"github.com/aanand-mishra/hostel-api/internal/validate"
)

// Messages returned to the client.
const (
	MsgInvalid        = "Invalid student data"
	MsgCreated        = "Student added successfully"
	MsgDeleted        = "Student deleted successfully"
	MsgPaymentUpdated = "Payment status updated successfully"

	MsgListFailed    = "Failed to fetch students"
	MsgCreateFailed  = "Database error"
	MsgDeleteFailed  = "Failed to delete student"
	MsgPaymentFailed = "Failed to update payment"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Asha", "room_number": "5", "bed_number": "2", "contact": "555-1234" }
//
// Success response (200 OK):
//
//	{ "message": "Student added successfully", "id": 1 }
//
// Error responses:
//
//	400 Bad Request: malformed JSON, empty name, room not in 1–12, bed not in 1–3
//	500 Internal:    database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var in types.StudentInput
		if err := request.DecodeJSON(r, &in); err != nil {
			slog.Info("rejected student payload", slog.String("error", err.Error()))
			response.BadRequest(w, MsgInvalid)
			return
		}

		// Validation runs before the store is touched; a rejected payload
		// never produces a row.
		student, err := validate.Student(in)
		if err != nil {
			slog.Info("rejected student payload", slog.String("error", err.Error()))
			response.BadRequest(w, MsgInvalid)
			return
		}

		id, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.InternalError(w, MsgCreateFailed, err)
			return
		}

		slog.Info("student created", slog.Int64("id", id))
		_ = response.WriteJSON(w, http.StatusOK, response.Created{Message: MsgCreated, ID: id})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns a JSON array of all students; [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.ListStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.InternalError(w, MsgListFailed, err)
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Deleting an id that does not exist still answers 200: the store reports
// no error for zero affected rows.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := store.DeleteStudent(r.Context(), id); err != nil {
			slog.Error("error deleting student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.InternalError(w, MsgDeleteFailed, err)
			return
		}

		response.OK(w, MsgDeleted)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdatePayment handles PUT /api/students/{id}/payment
//
// Request body (JSON):
//
//	{ "payment_status": "paid" }
//
// payment_status is stored as sent, including null. Like Delete, a missing
// id is not an error.
// ─────────────────────────────────────────────────────────────────────────────
func UpdatePayment(store storage.StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		slog.Info("updating payment status", slog.Int64("id", id))

		var in types.PaymentInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		if err := store.UpdatePaymentStatus(r.Context(), id, in.PaymentStatus); err != nil {
			slog.Error("error updating payment status",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.InternalError(w, MsgPaymentFailed, err)
			return
		}

		response.OK(w, MsgPaymentUpdated)
	}
}
