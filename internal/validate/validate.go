// Package validate holds the pure checks run on mutating payloads before
// any store access. Validators do no I/O.
//
// Only student creation and menu replacement are validated. Feedback and
// laundry submissions are accepted as sent.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/hostel-api/internal/types"
)

// MenuDays is the number of rows in a complete weekly menu.
const MenuDays = 7

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// validate is safe for concurrent use and caches struct metadata, so one
// instance is shared.
var validate = validator.New(validator.WithRequiredStructEnabled())

// menuReplacement exists to express the length rule as a struct tag.
type menuReplacement struct {
	Days []types.MenuDay `validate:"len=7"`
}

// Student checks a student creation payload and converts it to a
// NewStudent. room_number must fall in 1–12 and bed_number in 1–3, both
// inclusive. name may be any value except null, "", 0 and false; it is
// stored in its textual form. contact is not checked.
func Student(in types.StudentInput) (types.NewStudent, error) {
	if !in.Name.Truthy() {
		return types.NewStudent{}, fmt.Errorf("%w: field Name is required", ErrInvalidInput)
	}
	room, ok := in.RoomNumber.Int()
	if !ok {
		return types.NewStudent{}, fmt.Errorf("%w: room_number is not an integer", ErrInvalidInput)
	}
	bed, ok := in.BedNumber.Int()
	if !ok {
		return types.NewStudent{}, fmt.Errorf("%w: bed_number is not an integer", ErrInvalidInput)
	}

	student := types.NewStudent{
		Name:       in.Name.String(),
		RoomNumber: room,
		BedNumber:  bed,
		Contact:    in.Contact,
	}
	if err := validate.Struct(student); err != nil {
		return types.NewStudent{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}
	return student, nil
}

// Menu checks that a replacement menu has exactly seven items. Item
// contents are not inspected.
func Menu(days []types.MenuDay) error {
	if err := validate.Struct(menuReplacement{Days: days}); err != nil {
		return fmt.Errorf("%w: menu has %d items, want %d", ErrInvalidInput, len(days), MenuDays)
	}
	return nil
}

// describe turns validator errors into "field X ..." phrases.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("field %s is out of range", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
