// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Response shapes:
//
//	success, no payload   { "message": "Student deleted successfully" }
//	success, created row  { "message": "Student added successfully", "id": 7 }
//	client error          { "message": "Invalid student data" }
//	store failure         { "message": "Database error", "error": "<detail>" }
//
// List endpoints encode the row slice directly.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for messages and errors.
//
// Error carries the store's own error text on 500 responses. Passing it
// to the caller is inherited behaviour clients rely on for diagnostics.
type Response struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Created is returned by endpoints that insert a row.
type Created struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message builds a message-only Response.
func Message(msg string) Response {
	return Response{Message: msg}
}

// StoreError builds the 500 body for a failed store call: a fixed,
// operation-specific message plus the store's error detail.
func StoreError(msg string, err error) Response {
	return Response{Message: msg, Error: err.Error()}
}

// OK writes 200 with a message-only body.
func OK(w http.ResponseWriter, msg string) {
	_ = WriteJSON(w, http.StatusOK, Message(msg))
}

// BadRequest writes 400 with a message-only body.
func BadRequest(w http.ResponseWriter, msg string) {
	_ = WriteJSON(w, http.StatusBadRequest, Message(msg))
}

// Unauthorized writes 401 with a message-only body.
func Unauthorized(w http.ResponseWriter, msg string) {
	_ = WriteJSON(w, http.StatusUnauthorized, Message(msg))
}

// InternalError writes 500 with the message and the store error detail.
func InternalError(w http.ResponseWriter, msg string, err error) {
	_ = WriteJSON(w, http.StatusInternalServerError, StoreError(msg, err))
}
