package validate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aanand-mishra/hostel-api/internal/types"
)

func decodeStudent(t *testing.T, body string) types.StudentInput {
	t.Helper()
	var in types.StudentInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("Unmarshal(%s): %v", body, err)
	}
	return in
}

func TestStudentValid(t *testing.T) {
	in := decodeStudent(t, `{"name":"Asha","room_number":"5","bed_number":"2","contact":"555-1234"}`)

	got, err := Student(in)
	if err != nil {
		t.Fatalf("Student: %v", err)
	}
	want := types.NewStudent{Name: "Asha", RoomNumber: 5, BedNumber: 2, Contact: types.Text("555-1234")}
	if got != want {
		t.Errorf("Student = %+v, want %+v", got, want)
	}
}

func TestStudentNonStringName(t *testing.T) {
	got, err := Student(decodeStudent(t, `{"name":123,"room_number":5,"bed_number":2}`))
	if err != nil {
		t.Fatalf("Student: %v", err)
	}
	if got.Name != "123" {
		t.Errorf("Name = %q, want %q", got.Name, "123")
	}
}

func TestStudentBoundaries(t *testing.T) {
	tests := []struct {
		room, bed string
		ok        bool
	}{
		{"1", "1", true},
		{"12", "3", true},
		{"0", "1", false},
		{"13", "1", false},
		{"1", "0", false},
		{"1", "4", false},
		{"-1", "2", false},
	}
	for _, tt := range tests {
		body := `{"name":"N","room_number":` + tt.room + `,"bed_number":` + tt.bed + `}`
		_, err := Student(decodeStudent(t, body))
		if (err == nil) != tt.ok {
			t.Errorf("room=%s bed=%s: err = %v, want ok=%v", tt.room, tt.bed, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error %v does not wrap ErrInvalidInput", err)
		}
	}
}

func TestStudentInvalid(t *testing.T) {
	tests := map[string]struct {
		body    string
		wantMsg string
	}{
		"empty name":        {`{"name":"","room_number":5,"bed_number":2}`, "field Name is required"},
		"missing name":      {`{"room_number":5,"bed_number":2}`, "field Name is required"},
		"zero name":         {`{"name":0,"room_number":5,"bed_number":2}`, "field Name is required"},
		"false name":        {`{"name":false,"room_number":5,"bed_number":2}`, "field Name is required"},
		"null name":         {`{"name":null,"room_number":5,"bed_number":2}`, "field Name is required"},
		"room not numeric":  {`{"name":"A","room_number":"abc","bed_number":2}`, "room_number"},
		"bed missing":       {`{"name":"A","room_number":5}`, "bed_number"},
		"room out of range": {`{"name":"A","room_number":20,"bed_number":2}`, "field RoomNumber is out of range"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Student(decodeStudent(t, tt.body))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	for n := 0; n <= 9; n++ {
		err := Menu(make([]types.MenuDay, n))
		if n == MenuDays && err != nil {
			t.Errorf("Menu(%d items) = %v, want nil", n, err)
		}
		if n != MenuDays && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Menu(%d items) = %v, want ErrInvalidInput", n, err)
		}
	}

	if err := Menu(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Menu(nil) = %v, want ErrInvalidInput", err)
	}
}
