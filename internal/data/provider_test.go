package data

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// failingProvider errors on every call, exercising the fallback constants.
type failingProvider struct{}

func (failingProvider) Secondary() Provider { return nil }
func (failingProvider) GetCurrentPrice(ticker string) (float64, error) {
	return 0, errors.New("boom")
}
func (failingProvider) GetHistoricalCloses(ticker string, lookbackDays int) ([]float64, error) {
	return nil, errors.New("boom")
}

func TestPolygonProviderParsesCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ticker": "AAPL",
			"status": "OK",
			"results": [
				{"t": 1735689600000, "o": 100, "h": 102, "l": 99, "c": 101.5, "v": 1000},
				{"t": 1735776000000, "o": 101.5, "h": 103, "l": 101, "c": 102.25, "v": 1200}
			]
		}`))
	}))
	defer srv.Close()

	p := newPolygonDataProviderAt(srv.URL, "test", nil)
	closes, err := p.GetHistoricalCloses("AAPL", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closes) != 2 || closes[0] != 101.5 || closes[1] != 102.25 {
		t.Fatalf("unexpected closes: %v", closes)
	}
}

func TestPolygonProviderParsesPrevClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ticker": "AAPL", "status": "OK", "results": [{"t": 1735689600000, "c": 242.12}]}`))
	}))
	defer srv.Close()

	p := newPolygonDataProviderAt(srv.URL, "test", nil)
	price, err := p.GetCurrentPrice("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 242.12 {
		t.Fatalf("expected 242.12, got %f", price)
	}
}

func TestPolygonProviderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error"}`))
	}))
	defer srv.Close()

	p := newPolygonDataProviderAt(srv.URL, "test", nil)
	if _, err := p.GetHistoricalCloses("AAPL", 5); err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, err := p.GetCurrentPrice("AAPL"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestPolygonProviderDelegatesToSecondary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newPolygonDataProviderAt(srv.URL, "test", NewSyntheticProvider(7, 50))
	closes, err := p.GetHistoricalCloses("AAPL", 30)
	if err != nil {
		t.Fatalf("expected secondary to answer, got %v", err)
	}
	if len(closes) == 0 {
		t.Fatal("expected closes from secondary provider")
	}
}

func TestSpotOrFallback(t *testing.T) {
	if got := SpotOrFallback(failingProvider{}, "AAPL"); got != DefaultSpot {
		t.Fatalf("expected fallback %f, got %f", DefaultSpot, got)
	}
}

func TestHistoryOrEmpty(t *testing.T) {
	if got := HistoryOrEmpty(failingProvider{}, "AAPL", 30); len(got) != 0 {
		t.Fatalf("expected empty history on failure, got %d closes", len(got))
	}
}

// One provider instance serves every REST handler goroutine, so concurrent
// walks must not race on the shared generator. Run with -race.
func TestSyntheticProviderConcurrentUse(t *testing.T) {
	prov := NewSyntheticProvider(1, 100)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				closes, err := prov.GetHistoricalCloses("SPY", 30)
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				for _, c := range closes {
					if c <= 0 {
						t.Errorf("non-positive close %f", c)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestSyntheticProviderIsRepeatable(t *testing.T) {
	a, _ := NewSyntheticProvider(42, 100).GetHistoricalCloses("SPY", 30)
	b, _ := NewSyntheticProvider(42, 100).GetHistoricalCloses("SPY", 30)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected equal-length series, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("series diverge at %d: %f vs %f", i, a[i], b[i])
		}
		if a[i] <= 0 {
			t.Fatalf("non-positive close at %d: %f", i, a[i])
		}
	}
}
