package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/driftmirror/driftmirror-cli/internal/model"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := log.New(io.Discard)
	return New(srv.URL, logger), srv
}

func TestClient_DecodesSuccess(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resolutions/3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 3, "title": "Read daily", "frequency_per_week": 5, "min_minutes": 10}`)
	}))

	res, err := client.GetResolution(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetResolution failed: %v", err)
	}
	if res.Title != "Read daily" || res.FrequencyPerWeek != 5 {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestClient_APIErrorCarriesDetail(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail": "Resolution not found"}`)
	}))

	_, err := client.GetResolution(context.Background(), 99)
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "Resolution not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if !apiErr.NotFound() {
		t.Error("NotFound() should be true")
	}
}

func TestClient_ValidationErrorListIgnored(t *testing.T) {
	// FastAPI 422s carry a list in "detail"; that list is developer
	// noise, not a user message.
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail": [{"loc": ["body", "friction"], "msg": "value error"}]}`)
	}))

	_, err := client.ListResolutions(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "" {
		t.Errorf("expected empty message for list detail, got %q", apiErr.Message)
	}
}

func TestClient_NoRetryOnFailure(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetDashboard(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 request, server saw %d", n)
	}
}

func TestClient_OverviewComposesRollups(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/resolutions/":
			io.WriteString(w, `[{"id": 1, "title": "Write daily"}, {"id": 2, "title": "Run"}]`)
		case "/api/dashboard/1/":
			io.WriteString(w, `{
				"resolution": {"id": 1, "title": "Write daily"},
				"metrics": {"drift_score": 0.7, "total_checkins": 5},
				"drift_triggered": true
			}`)
		case "/api/dashboard/2/":
			io.WriteString(w, `{
				"resolution": {"id": 2, "title": "Run"},
				"current_plan": {"id": 12, "resolution_id": 2, "version": 2},
				"metrics": {"drift_score": 0.1}
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	entries, err := client.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].DriftTriggered || entries[0].Metrics.Severity() != model.DriftHigh {
		t.Errorf("first entry should carry the drift flag and high severity: %+v", entries[0])
	}
	if entries[1].Plan == nil || entries[1].Plan.Version != 2 {
		t.Errorf("second entry should carry its plan: %+v", entries[1].Plan)
	}
}

func TestClient_BearerTokenHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		io.WriteString(w, `{"status": "ok"}`)
	}))
	defer srv.Close()

	client := New(srv.URL, log.New(io.Discard), WithToken("s3cret"))
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if got != "Bearer s3cret" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var got string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		io.WriteString(w, `{"status": "ok"}`)
	}))

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}

func TestClient_UpdateMinimumActionUsesPatch(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/api/resolutions/7/minimum-action" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"id": 7, "minimum_action_text": "open the book"}`)
	}))

	res, err := client.UpdateMinimumAction(context.Background(), 7, model.MinimumActionUpdate{
		MinimumActionText: "open the book",
	})
	if err != nil {
		t.Fatalf("UpdateMinimumAction failed: %v", err)
	}
	if res.MinimumActionText != "open the book" {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestClient_CreateCheckinClampsFriction(t *testing.T) {
	var gotBody []byte
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{
			"checkin": {"id": 1, "resolution_id": 2, "did_minimum_action": true, "friction": 3},
			"drift_score": 0.2, "drift_triggered": false, "plan_updated": false
		}`)
	}))

	_, err := client.CreateCheckin(context.Background(), model.CheckinCreate{
		ResolutionID:     2,
		DidMinimumAction: true,
		Friction:         11, // out of range on purpose
	})
	if err != nil {
		t.Fatalf("CreateCheckin failed: %v", err)
	}

	body := string(gotBody)
	if want := `"friction":3`; !strings.Contains(body, want) {
		t.Errorf("request body %s does not contain %s", body, want)
	}
}

func TestClient_DeleteResolution(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteResolution(context.Background(), 5); err != nil {
		t.Fatalf("DeleteResolution failed: %v", err)
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail passes through", &APIError{Status: 400, Message: "Title too long"}, "Title too long"},
		{"bare 404", &APIError{Status: 404}, "not found"},
		{"bare 422", &APIError{Status: 422}, "the server rejected the request"},
		{"bare 500", &APIError{Status: 500}, "the server returned an error (500)"},
		{"transport", errors.New("dial tcp: connection refused"), "can't reach DriftMirror, try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Humanize(tt.err); got != tt.want {
				t.Errorf("Humanize() = %q, want %q", got, tt.want)
			}
		})
	}
}
