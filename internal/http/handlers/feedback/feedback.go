// Package feedback contains the HTTP handlers for resident feedback.
//
// Listing and submitting are public. Feedback is append-only: the only
// mutation besides submission is the gated clear-all.
package feedback

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
	MsgCreated = "Feedback submitted successfully"
	MsgCleared = "All feedback cleared successfully"

	MsgListFailed   = "Failed to fetch feedback"
	MsgCreateFailed = "Failed to submit feedback"
	MsgClearFailed  = "Failed to clear feedback"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/feedback
// Returns a JSON array of entries, newest first; [] when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.FeedbackStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.ListFeedback(r.Context())
		if err != nil {
			slog.Error("error getting feedback", slog.String("error", err.Error()))
			response.InternalError(w, MsgListFailed, err)
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, entries)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/feedback
//
// Request body (JSON):
//
//	{ "name": "Ravi", "room_number": 3, "message": "Fan is broken" }
//
// Success response (200 OK):
//
//	{ "message": "Feedback submitted successfully", "id": 1 }
//
// Error responses:
//
//	400 Bad Request: malformed JSON
//	500 Internal:    database error
//
// No field is required. Absent fields, and every field of a body that is
// not an object, are stored as null.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.FeedbackStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in types.FeedbackInput
		if err := request.DecodeJSON(r, &in); err != nil {
			response.BadRequest(w, err.Error())
			return
		}

		id, err := store.CreateFeedback(r.Context(), in)
		if err != nil {
			slog.Error("error submitting feedback", slog.String("error", err.Error()))
			response.InternalError(w, MsgCreateFailed, err)
			return
		}

		slog.Info("feedback submitted", slog.Int64("id", id))
		_ = response.WriteJSON(w, http.StatusOK, response.Created{Message: MsgCreated, ID: id})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Clear handles DELETE /api/feedback
//
// Removes every entry. Success response (200 OK):
//
//	{ "message": "All feedback cleared successfully" }
//
// Error responses:
//
//	500 Internal:    database error
// ─────────────────────────────────────────────────────────────────────────────
func Clear(store storage.FeedbackStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearFeedback(r.Context()); err != nil {
			slog.Error("error clearing feedback", slog.String("error", err.Error()))
			response.InternalError(w, MsgClearFailed, err)
			return
		}

		slog.Info("feedback cleared")
		response.OK(w, MsgCleared)
	}
}
