// Package foodmenu contains the HTTP handlers for the weekly food menu.
// Reading the menu is public; replacing it is gated.
package foodmenu

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/hostel-api/internal/menu"
	"github.com/aanand-mishra/hostel-api/internal/storage"
	"github.com/aanand-mishra/hostel-api/internal/types"
	"github.com/aanand-mishra/hostel-api/internal/utils/request"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
	"github.com/aanand-mishra/hostel-api/internal/validate"
)

// Messages returned to the client.
const (
	MsgInvalid = "Menu should be an array of 7 items"
	MsgUpdated = "Menu updated successfully"

	MsgListFailed  = "Failed to fetch menu"
	MsgClearFailed = "Failed to clear old menu"
)

// GetList handles GET /api/food-menu.
func GetList(store storage.MenuStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting food menu")

		days, err := store.ListMenu(r.Context())
		if err != nil {
			slog.Error("error getting food menu", slog.String("error", err.Error()))
			response.InternalError(w, MsgListFailed, err)
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, days)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Replace handles POST /api/food-menu
//
// Request body (JSON), exactly seven items:
//
//	[ { "day": "Monday", "breakfast": "Poha", "lunch": "Dal", "dinner": "Roti" }, ... ]
//
// Success response (200 OK):
//
//	{ "message": "Menu updated successfully" }
//
// Error responses:
//
//	400 Bad Request: body is not an array of seven items (menu untouched)
//	500 Internal:    the old menu could not be cleared (nothing inserted)
//
// The response is 200 once all seven inserts were attempted, even if some
// of them failed; those failures are only logged.
// ─────────────────────────────────────────────────────────────────────────────
func Replace(replacer *menu.Replacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("replacing food menu")

		var days []types.MenuDay
		if err := request.DecodeJSON(r, &days); err != nil {
			// Objects, strings and other non-array bodies land here.
			slog.Info("rejected menu payload", slog.String("error", err.Error()))
			response.BadRequest(w, MsgInvalid)
			return
		}
		if err := validate.Menu(days); err != nil {
			slog.Info("rejected menu payload", slog.String("error", err.Error()))
			response.BadRequest(w, MsgInvalid)
			return
		}

		report, err := replacer.Replace(r.Context(), days)
		if err != nil {
			slog.Error("error clearing food menu", slog.String("error", err.Error()))
			response.InternalError(w, MsgClearFailed, err)
			return
		}

		if len(report.Failures) > 0 {
			slog.Warn("food menu replaced with missing days",
				slog.Int("inserted", report.Inserted()),
				slog.Int("failed", len(report.Failures)))
		} else {
			slog.Info("food menu replaced", slog.Int("inserted", report.Inserted()))
		}
		response.OK(w, MsgUpdated)
	}
}
