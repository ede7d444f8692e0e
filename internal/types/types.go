// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, validators and utils can all import types without
// depending on each other.
//
// Two kinds of structs live here:
//
//  1. Records: what the store returns and what list endpoints encode
//     (Student, MenuDay, FeedbackEntry, LaundryRequest).
//
//  2. Payloads: what mutating endpoints decode from the request body
//     (StudentInput, FeedbackInput, LaundryInput, StatusInput).
//
// Payload fields that the API does not check are typed as Scalar so that
// any JSON value is accepted and absent fields reach the store as NULL.
// Payloads also accept bodies that are not JSON objects (arrays, strings,
// numbers): those decode to the zero payload, every field null.
package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Student represents a student record in our system.
//
// ContactInfo and PaymentStatus are nullable: a freshly created student has
// no payment status until PUT /api/students/{id}/payment sets one.
type Student struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	RoomNumber    int    `json:"room_number"`
	BedNumber     int    `json:"bed_number"`
	Contact       Scalar `json:"contact"`
	PaymentStatus Scalar `json:"payment_status"`
}

// StudentInput is the POST /api/students body as sent by the client.
//
// room_number and bed_number arrive either as JSON numbers or as numeric
// strings ("5"), so they stay loosely typed until validation. name is any
// value that is not empty, zero, false or null.
type StudentInput struct {
	Name       Scalar `json:"name"`
	RoomNumber Scalar `json:"room_number"`
	BedNumber  Scalar `json:"bed_number"`
	Contact    Scalar `json:"contact"`
}

// UnmarshalJSON decodes an object body; any other body yields every field
// null.
func (in *StudentInput) UnmarshalJSON(data []byte) error {
	type studentInput StudentInput
	*in = StudentInput{}
	return decodeObject(data, (*studentInput)(in))
}

// NewStudent is a validated StudentInput, ready to be inserted.
//
// validate:"..." tags are checked by the go-playground/validator package.
type NewStudent struct {
	Name       string `validate:"required"`
	RoomNumber int    `validate:"min=1,max=12"`
	BedNumber  int    `validate:"min=1,max=3"`
	Contact    Scalar
}

// MenuDay is one row of the weekly food menu. The full menu is always
// replaced as a set of seven rows.
type MenuDay struct {
	Day       Scalar `json:"day"`
	Breakfast Scalar `json:"breakfast"`
	Lunch     Scalar `json:"lunch"`
	Dinner    Scalar `json:"dinner"`
}

// UnmarshalJSON accepts any JSON value for a menu item. Anything that is
// not an object becomes a day with every field unset.
func (m *MenuDay) UnmarshalJSON(data []byte) error {
	// menuDay has the same fields but no methods, so decoding into it does
	// not recurse back into this function. The same holds for the payload
	// methods below.
	type menuDay MenuDay
	*m = MenuDay{}
	return decodeObject(data, (*menuDay)(m))
}

// decodeObject decodes data into v when it is a JSON object and leaves v
// untouched otherwise.
func decodeObject(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	return json.Unmarshal(data, v)
}

// FeedbackEntry is an append-only feedback message.
type FeedbackEntry struct {
	ID         int64     `json:"id"`
	Name       Scalar    `json:"name"`
	RoomNumber Scalar    `json:"room_number"`
	Message    Scalar    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedbackInput is the POST /api/feedback body. No field is required.
type FeedbackInput struct {
	Name       Scalar `json:"name"`
	RoomNumber Scalar `json:"room_number"`
	Message    Scalar `json:"message"`
}

func (in *FeedbackInput) UnmarshalJSON(data []byte) error {
	type feedbackInput FeedbackInput
	*in = FeedbackInput{}
	return decodeObject(data, (*feedbackInput)(in))
}

// LaundryRequest is a laundry submission and its processing status.
type LaundryRequest struct {
	ID          int64  `json:"id"`
	StudentName Scalar `json:"student_name"`
	RoomNumber  Scalar `json:"room_number"`
	LaundryType Scalar `json:"laundry_type"`
	Quantity    Scalar `json:"quantity"`
	Status      Scalar `json:"status"`
}

// LaundryInput is the POST /api/laundry body. No field is required.
type LaundryInput struct {
	StudentName Scalar `json:"student_name"`
	RoomNumber  Scalar `json:"room_number"`
	LaundryType Scalar `json:"laundry_type"`
	Quantity    Scalar `json:"quantity"`
}

func (in *LaundryInput) UnmarshalJSON(data []byte) error {
	type laundryInput LaundryInput
	*in = LaundryInput{}
	return decodeObject(data, (*laundryInput)(in))
}

// PaymentInput is the PUT /api/students/{id}/payment body.
type PaymentInput struct {
	PaymentStatus Scalar `json:"payment_status"`
}

func (in *PaymentInput) UnmarshalJSON(data []byte) error {
	type paymentInput PaymentInput
	*in = PaymentInput{}
	return decodeObject(data, (*paymentInput)(in))
}

// StatusInput is the PUT /api/laundry/{id} body.
type StatusInput struct {
	Status Scalar `json:"status"`
}

func (in *StatusInput) UnmarshalJSON(data []byte) error {
	type statusInput StatusInput
	*in = StatusInput{}
	return decodeObject(data, (*statusInput)(in))
}
