// Package laundry contains the HTTP handlers for laundry requests.
//
// Residents submit requests without a token; listing, status updates and
// clearing are gated.
package laundry

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/hostel-api/internal/storage"
	"github.com/aanand-mishra/hostel-api/internal/types"
	"github.com/aanand-mishra/hostel-api/internal/utils/request"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
)

// Messages returned to the client.
const (
	MsgCreated       = "Laundry request submitted successfully"
	MsgStatusUpdated = "Laundry status updated successfully"
	MsgCleared       = "All laundry requests cleared successfully"

	MsgListFailed   = "Failed to fetch laundry"
	MsgCreateFailed = "Failed to submit laundry"
	MsgUpdateFailed = "Failed to update laundry"
	MsgClearFailed  = "Failed to clear laundry"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/laundry
// Returns a JSON array of every request; [] when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.LaundryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting laundry requests")

		requests, err := store.ListLaundry(r.Context())
		if err != nil {
			slog.Error("error getting laundry requests", slog.String("error", err.Error()))
			response.InternalError(w, MsgListFailed, err)
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, requests)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/laundry
//
// Request body (JSON):
//
//	{ "student_name": "Meera", "room_number": 7, "laundry_type": "wash", "quantity": 4 }
//
// Success response (200 OK):
//
//	{ "message": "Laundry request submitted successfully", "id": 1 }
//
// Error responses:
//
//	400 Bad Request: malformed JSON
//	500 Internal:    database error
//
// No field is required; status starts as "pending".
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.LaundryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in types.LaundryInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		id, err := store.CreateLaundry(r.Context(), in)
		if err != nil {
			slog.Error("error submitting laundry request", slog.String("error", err.Error()))
			response.InternalError(w, MsgCreateFailed, err)
			return
		}

		slog.Info("laundry request submitted", slog.Int64("id", id))
		_ = response.WriteJSON(w, http.StatusOK, response.Created{Message: MsgCreated, ID: id})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateStatus handles PUT /api/laundry/{id}
//
// Request body (JSON):
//
//	{ "status": "done" }
//
// Success response (200 OK):
//
//	{ "message": "Laundry status updated successfully" }
//
// Error responses:
//
//	400 Bad Request: id is not an integer, malformed JSON
//	500 Internal:    database error
//
// There is no existence check: an unknown id answers 200 with zero rows
// changed.
// ─────────────────────────────────────────────────────────────────────────────
func UpdateStatus(store storage.LaundryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		var in types.StatusInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		if err := store.UpdateLaundryStatus(r.Context(), id, in.Status); err != nil {
			slog.Error("error updating laundry status",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.InternalError(w, MsgUpdateFailed, err)
			return
		}

		slog.Info("laundry status updated",
			slog.Int64("id", id),
			slog.String("status", in.Status.String()))
		response.OK(w, MsgStatusUpdated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Clear handles DELETE /api/laundry
//
// Removes every request. Success response (200 OK):
//
//	{ "message": "All laundry requests cleared successfully" }
//
// Error responses:
//
//	500 Internal:    database error
// ─────────────────────────────────────────────────────────────────────────────
func Clear(store storage.LaundryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearLaundry(r.Context()); err != nil {
			slog.Error("error clearing laundry requests", slog.String("error", err.Error()))
			response.InternalError(w, MsgClearFailed, err)
			return
		}

		slog.Info("laundry requests cleared")
		response.OK(w, MsgCleared)
	}
}
