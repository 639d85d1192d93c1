package holidayapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

const sampleBody = `{
  "status": 200,
  "warning": "These results do not include state and province holidays.",
  "requests": {"used": 7, "available": 9993, "resets": "2019-09-01 00:00:00"},
  "holidays": [
    {
      "name": "New Year's Day",
      "date": "2019-01-01",
      "observed": "2019-01-01",
      "public": true,
      "country": "US",
      "uuid": "82f78b8a-019e-479e-a19f-99040275f9bf",
      "weekday": {
        "date": {"name": "Tuesday", "numeric": "2"},
        "observed": {"name": "Tuesday", "numeric": "2"}
      }
    },
    {
      "name": "Groundhog Day",
      "date": "2019-02-02",
      "observed": "2019-02-02",
      "public": false,
      "country": "US",
      "uuid": "9a3a1d1c-3aa6-4a5d-9b63-0e0e9ad4b7a6",
      "weekday": {
        "date": {"name": "Saturday", "numeric": 6},
        "observed": {"name": "Saturday", "numeric": 6}
      }
    }
  ]
}`

func TestClient_Holidays(t *testing.T) {
	queries := make(chan map[string]string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		q := r.URL.Query()
		queries <- map[string]string{
			"key":     q.Get("key"),
			"country": q.Get("country"),
			"year":    q.Get("year"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 2019, zap.NewNop())
	resp, err := client.Holidays(context.Background(), "US")
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}

	gotQuery := <-queries
	if gotQuery["key"] != "secret" || gotQuery["country"] != "US" || gotQuery["year"] != "2019" {
		t.Errorf("query = %v, want key=secret country=US year=2019", gotQuery)
	}

	if len(resp.Holidays) != 2 {
		t.Fatalf("len(Holidays) = %d, want 2", len(resp.Holidays))
	}
	if resp.Requests.Used != 7 || resp.Requests.Available != 9993 {
		t.Errorf("Requests = %+v, want used=7 available=9993", resp.Requests)
	}
	if resp.Warning == "" {
		t.Error("Warning is empty, want API warning")
	}

	first := resp.Holidays[0]
	if first.Weekday.Date.Numeric != 2 || first.IsWeekend() {
		t.Errorf("first holiday numeric = %d weekend = %v, want 2 false", first.Weekday.Date.Numeric, first.IsWeekend())
	}
	if first.UUID.String() != "82f78b8a-019e-479e-a19f-99040275f9bf" {
		t.Errorf("UUID = %s", first.UUID)
	}

	second := resp.Holidays[1]
	if second.Weekday.Date.Numeric != 6 || !second.IsWeekend() {
		t.Errorf("second holiday numeric = %d weekend = %v, want 6 true", second.Weekday.Date.Numeric, second.IsWeekend())
	}
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": 401, "error": "Invalid API key."}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "bad", 2019, zap.NewNop()).Holidays(context.Background(), "US")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v (%T), want *StatusError", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", statusErr.StatusCode)
	}
	if statusErr.Message != "Invalid API key." {
		t.Errorf("Message = %q, want %q", statusErr.Message, "Invalid API key.")
	}
}

func TestClient_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", "<html>oops</html>"},
		{"Wrong shape", `{"holidays": "none"}`},
		{"Missing holidays", `{"status": 200}`},
		{"Bad numeric", `{"holidays": [{"date": "2019-01-01", "weekday": {"date": {"numeric": "x"}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, "k", 2019, zap.NewNop()).Holidays(context.Background(), "US")

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("error = %v (%T), want *DecodeError", err, err)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, "secret-key", 2019, zap.NewNop(), WithTimeout(time.Second)).Holidays(context.Background(), "US")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error leaks API key: %v", err)
	}
}

func TestClient_RateLimitCancelled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"holidays": []}`))
	}))
	defer server.Close()

	// One request per minute: the first passes, the second must wait
	client := NewClient(server.URL, "k", 2019, zap.NewNop(), WithRateLimit(1.0/60))

	if _, err := client.Holidays(context.Background(), "US"); err != nil {
		t.Fatalf("first Holidays() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Holidays(ctx, "GB")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("second Holidays() error = %v (%T), want *TransportError", err, err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestNumeric_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Numeric
		wantErr bool
	}{
		{`"6"`, 6, false},
		{`7`, 7, false},
		{`" 1 "`, 1, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"sat"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var n Numeric
			err := n.UnmarshalJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && n != tt.want {
				t.Errorf("UnmarshalJSON(%s) = %d, want %d", tt.input, n, tt.want)
			}
		})
	}
}

func TestHoliday_DayNumericFallback(t *testing.T) {
	tests := []struct {
		date string
		want Numeric
	}{
		{"2019-01-05", 6}, // Saturday
		{"2019-01-06", 7}, // Sunday
		{"2019-01-07", 1}, // Monday
		{"bogus", 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			h := Holiday{Date: tt.date}
			if got := h.DayNumeric(); got != tt.want {
				t.Errorf("DayNumeric(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}
