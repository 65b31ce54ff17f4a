package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository/postgres"
)

// fakeWeather answers lookups from a table and records every call
type fakeWeather struct {
	mu      sync.Mutex
	calls   []string
	results map[string]error
	gates   map[string]chan struct{}
}

func (f *fakeWeather) Lookup(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, city)
	gate := f.gates[city]
	err := f.results[city]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}
	return domain.WeatherSnapshot{Name: city, Temperature: 10.5, Humidity: 50, WindSpeed: 2}, nil
}

func (f *fakeWeather) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestWidget(weather *fakeWeather) (*WidgetService, *postgres.MemoryRepository) {
	repo := postgres.NewMemoryRepository()
	return NewWidgetService(weather, repo, domain.DefaultMessages("ko"), ""), repo
}

func TestMountLooksUpDefaultCityOnce(t *testing.T) {
	weather := &fakeWeather{}
	widget, _ := newTestWidget(weather)

	widget.Mount(context.Background())
	widget.Mount(context.Background())

	if n := weather.callCount(); n != 1 {
		t.Fatalf("Expected exactly 1 lookup, got %d", n)
	}
	if weather.calls[0] != "Seoul" {
		t.Errorf("Expected default city Seoul, got %q", weather.calls[0])
	}
	state := widget.State()
	if state.Phase != domain.PhaseLoaded || state.Snapshot.Name != "Seoul" {
		t.Errorf("Expected Seoul to be loaded, got %+v", state)
	}
}

func TestMountUsesConfiguredDefaultCity(t *testing.T) {
	weather := &fakeWeather{}
	widget := NewWidgetService(weather, nil, domain.DefaultMessages("en"), "Busan")

	widget.Mount(context.Background())

	if len(weather.calls) != 1 || weather.calls[0] != "Busan" {
		t.Errorf("Expected a single lookup for Busan, got %v", weather.calls)
	}
}

func TestSubmitBlankCityIsIgnored(t *testing.T) {
	weather := &fakeWeather{}
	widget, _ := newTestWidget(weather)
	widget.Submit(context.Background(), "Tokyo")
	before := widget.State()

	for _, city := range []string{"", "  ", "\t"} {
		state, ok := widget.Submit(context.Background(), city)
		if ok {
			t.Errorf("Expected blank city %q to be ignored", city)
		}
		if state.Phase != before.Phase || state.Snapshot.Name != before.Snapshot.Name {
			t.Errorf("Expected state to be unchanged, got %+v", state)
		}
	}

	if n := weather.callCount(); n != 1 {
		t.Errorf("Expected only the Tokyo lookup, got %d calls", n)
	}
}

func TestSubmitResolvesToExactlyOneOutcome(t *testing.T) {
	weather := &fakeWeather{results: map[string]error{
		"Atlantis": domain.ErrNotFound,
		"Locked":   domain.ErrUnauthorized,
		"Offline":  domain.ErrNetwork,
		"Broken":   &domain.UpstreamError{Status: 500, Message: "boom"},
		"Vague":    &domain.UpstreamError{Status: 503},
	}}
	messages := domain.DefaultMessages("ko")

	tests := []struct {
		city        string
		expectPhase domain.Phase
		expectError string
	}{
		{"Seoul", domain.PhaseLoaded, ""},
		{"Atlantis", domain.PhaseFailed, messages.NotFound},
		{"Locked", domain.PhaseFailed, messages.Unauthorized},
		{"Offline", domain.PhaseFailed, messages.Network},
		{"Broken", domain.PhaseFailed, "에러가 발생했습니다: boom"},
		{"Vague", domain.PhaseFailed, "에러가 발생했습니다: 알 수 없는 에러"},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			widget, _ := newTestWidget(weather)

			state, ok := widget.Submit(context.Background(), tt.city)
			if !ok {
				t.Fatal("Expected lookup to run")
			}
			if state.Phase != tt.expectPhase {
				t.Fatalf("Expected phase %s, got %s", tt.expectPhase, state.Phase)
			}
			if state.Error != tt.expectError {
				t.Errorf("Expected error %q, got %q", tt.expectError, state.Error)
			}
			if (state.Snapshot != nil) == (state.Phase == domain.PhaseFailed) {
				t.Errorf("Snapshot presence does not match phase: %+v", state)
			}
			if widget.State() != state {
				t.Errorf("Expected slot to hold returned state")
			}
		})
	}
}

func TestFailureClearsPreviousSnapshot(t *testing.T) {
	weather := &fakeWeather{results: map[string]error{"Atlantis": domain.ErrNotFound}}
	widget, _ := newTestWidget(weather)

	widget.Submit(context.Background(), "Seoul")
	state, _ := widget.Submit(context.Background(), "Atlantis")

	if state.Snapshot != nil {
		t.Errorf("Expected stale snapshot to be cleared, got %+v", state.Snapshot)
	}
}

func TestSubmitShowsLoadingWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	weather := &fakeWeather{gates: map[string]chan struct{}{"Slow": gate}}
	widget, _ := newTestWidget(weather)

	done := make(chan struct{})
	go func() {
		widget.Submit(context.Background(), "Slow")
		close(done)
	}()

	waitFor(t, func() bool { return weather.callCount() == 1 })
	if phase := widget.State().Phase; phase != domain.PhaseLoading {
		t.Errorf("Expected loading while in flight, got %s", phase)
	}

	close(gate)
	<-done
	if phase := widget.State().Phase; phase != domain.PhaseLoaded {
		t.Errorf("Expected loaded after resolution, got %s", phase)
	}
}

func TestOverlappingLookupsLastResolutionWins(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	weather := &fakeWeather{gates: map[string]chan struct{}{
		"Paris":  first,
		"London": second,
	}}
	widget, _ := newTestWidget(weather)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); widget.Submit(context.Background(), "Paris") }()
	waitFor(t, func() bool { return weather.callCount() == 1 })
	go func() { defer wg.Done(); widget.Submit(context.Background(), "London") }()
	waitFor(t, func() bool { return weather.callCount() == 2 })

	// London was issued last but resolves first
	close(second)
	waitFor(t, func() bool { return widget.State().Phase == domain.PhaseLoaded })
	if name := widget.State().Snapshot.Name; name != "London" {
		t.Fatalf("Expected London after first resolution, got %s", name)
	}

	close(first)
	wg.Wait()
	if name := widget.State().Snapshot.Name; name != "Paris" {
		t.Errorf("Expected Paris to win as the last resolution, got %s", name)
	}
}

func TestLookupsAreJournaled(t *testing.T) {
	weather := &fakeWeather{results: map[string]error{"Atlantis": domain.ErrNotFound}}
	widget, repo := newTestWidget(weather)

	widget.Submit(context.Background(), "Seoul")
	widget.Submit(context.Background(), "Atlantis")
	widget.Submit(context.Background(), " ")
	widget.WaitBackground()

	records, err := repo.GetLookups(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetLookups returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 journal entries, got %d", len(records))
	}

	outcomes := map[string]domain.ErrorKind{}
	for _, rec := range records {
		outcomes[rec.City] = rec.Outcome
	}
	if outcomes["Seoul"] != domain.OutcomeLoaded {
		t.Errorf("Expected Seoul to be journaled as loaded, got %s", outcomes["Seoul"])
	}
	if outcomes["Atlantis"] != domain.KindNotFound {
		t.Errorf("Expected Atlantis to be journaled as not_found, got %s", outcomes["Atlantis"])
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
