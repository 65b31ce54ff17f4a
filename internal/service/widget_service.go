package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

// WidgetService holds the single UiState slot and drives lookups into it.
// Overlapping lookups are not suppressed: the last one to resolve wins.
type WidgetService struct {
	weather     WeatherLookup
	repo        DataRepository
	messages    domain.Messages
	defaultCity string

	mu    sync.Mutex
	state domain.UiState

	mountOnce sync.Once
	wgBg      sync.WaitGroup // tracks background journal writes for graceful shutdown
}

// NewWidgetService creates a new widget service
func NewWidgetService(
	weather WeatherLookup,
	repo DataRepository,
	messages domain.Messages,
	defaultCity string,
) *WidgetService {
	if defaultCity == "" {
		defaultCity = domain.DefaultCity
	}
	return &WidgetService{
		weather:     weather,
		repo:        repo,
		messages:    messages,
		defaultCity: defaultCity,
		state:       domain.Idle(),
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *WidgetService) WaitBackground() {
	s.wgBg.Wait()
}

// Messages returns the catalog used for error lines and labels
func (s *WidgetService) Messages() domain.Messages {
	return s.messages
}

// State returns the current display state
func (s *WidgetService) State() domain.UiState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mount performs the initial lookup for the default city. Only the first
// call does anything.
func (s *WidgetService) Mount(ctx context.Context) {
	s.mountOnce.Do(func() {
		log.Printf("Widget mounted, loading default city %q", s.defaultCity)
		s.Submit(ctx, s.defaultCity)
	})
}

// Submit runs a lookup for city and stores its outcome in the slot.
// A blank city is ignored: no request is made and the state is left as is,
// in which case ok is false.
func (s *WidgetService) Submit(ctx context.Context, city string) (state domain.UiState, ok bool) {
	city = strings.TrimSpace(city)
	if city == "" {
		return s.State(), false
	}

	s.set(domain.Loading())
	snapshot, err := s.Lookup(ctx, city)
	state = domain.Resolve(snapshot, err, s.messages)
	s.set(state)

	return state, true
}

// Lookup queries the weather source and journals the outcome without
// touching the display slot
func (s *WidgetService) Lookup(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	start := time.Now()
	snapshot, err := s.weather.Lookup(ctx, city)
	took := time.Since(start)

	if err != nil {
		log.Printf("Lookup for %q failed (%s) after %s: %v", city, domain.KindOf(err), took, err)
	} else {
		log.Printf("Lookup for %q resolved to %s, %.2f°C after %s", city, snapshot.Name, snapshot.Temperature, took)
	}

	if domain.KindOf(err) != domain.KindEmptyCity {
		s.record(domain.NewLookupRecord(city, snapshot, err, took))
	}

	return snapshot, err
}

func (s *WidgetService) set(state domain.UiState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// record persists the outcome asynchronously (tracked for graceful shutdown)
func (s *WidgetService) record(rec domain.LookupRecord) {
	if s.repo == nil {
		return
	}
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SaveLookup(bgCtx, rec); err != nil {
			log.Printf("Failed to save lookup record: %v", err)
		}
	}()
}
