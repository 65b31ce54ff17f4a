package service

import (
	"context"

	"github.com/weatherwidget/backend/internal/domain"
)

// DataRepository is re-exported from domain for convenience
type DataRepository = domain.DataRepository

// WeatherLookup is the single operation the widget needs from a weather source
type WeatherLookup interface {
	Lookup(ctx context.Context, city string) (domain.WeatherSnapshot, error)
}
