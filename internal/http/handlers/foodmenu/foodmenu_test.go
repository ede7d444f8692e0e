package foodmenu

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aanand-mishra/hostel-api/internal/menu"
	"github.com/aanand-mishra/hostel-api/internal/types"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
)

type mockStore struct {
	mu        sync.Mutex
	days      []types.MenuDay
	clearErr  error
	insertErr error
	listErr   error
	clears    int
}

func (m *mockStore) ListMenu(context.Context) ([]types.MenuDay, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.MenuDay{}, m.days...), nil
}

func (m *mockStore) ClearMenu(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.days = nil
	return nil
}

func (m *mockStore) InsertMenuDay(_ context.Context, day types.MenuDay) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days = append(m.days, day)
	return nil
}

func replaceHandler(store *mockStore) http.HandlerFunc {
	return Replace(menu.NewReplacer(store, slog.New(slog.NewTextHandler(io.Discard, nil)), 2))
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/food-menu", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func week(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = `{"day":"d","breakfast":"b","lunch":"l","dinner":"x"}`
	}
	return "[" + strings.Join(items, ",") + "]"
}

func message(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var got response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return got
}

func TestReplaceRejectsWrongShape(t *testing.T) {
	for _, body := range []string{week(0), week(6), week(8), `{"day":"Monday"}`, `"x"`, ``, `[`} {
		store := &mockStore{days: []types.MenuDay{{Day: types.Text("Monday")}}}
		rec := post(replaceHandler(store), body)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%q: status = %d", body, rec.Code)
			continue
		}
		if got := message(t, rec).Message; got != MsgInvalid {
			t.Errorf("%q: message = %q", body, got)
		}
		if store.clears != 0 || len(store.days) != 1 {
			t.Errorf("%q: menu touched on rejected payload", body)
		}
	}
}

func TestReplaceStoresSevenDays(t *testing.T) {
	store := &mockStore{}
	rec := post(replaceHandler(store), week(7))
	if rec.Code != http.StatusOK || message(t, rec).Message != MsgUpdated {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
	if len(store.days) != 7 {
		t.Errorf("stored %d days", len(store.days))
	}
}

func TestReplaceAcceptsNonObjectItems(t *testing.T) {
	store := &mockStore{}
	rec := post(replaceHandler(store), `[1,"two",null,{},[],true,{"day":"Sunday"}]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.days) != 7 {
		t.Errorf("stored %d days", len(store.days))
	}
}

func TestReplaceClearFailure(t *testing.T) {
	store := &mockStore{clearErr: errors.New("table locked")}
	rec := post(replaceHandler(store), week(7))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	got := message(t, rec)
	if got.Message != MsgClearFailed || got.Error != "table locked" {
		t.Errorf("got %+v", got)
	}
}

func TestReplaceInsertFailuresStillOK(t *testing.T) {
	store := &mockStore{insertErr: errors.New("constraint")}
	rec := post(replaceHandler(store), week(7))
	if rec.Code != http.StatusOK || message(t, rec).Message != MsgUpdated {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestGetList(t *testing.T) {
	rec := httptest.NewRecorder()
	GetList(&mockStore{})(rec, httptest.NewRequest(http.MethodGet, "/api/food-menu", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	GetList(&mockStore{listErr: errors.New("gone")})(rec, httptest.NewRequest(http.MethodGet, "/api/food-menu", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if got := message(t, rec); got.Message != MsgListFailed || got.Error != "gone" {
		t.Errorf("got %+v", got)
	}
}
