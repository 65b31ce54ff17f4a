package http

import (
	"bytes"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/service"
	"github.com/weatherwidget/backend/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	widget  *service.WidgetService
	weather *service.WeatherService
	repo    service.DataRepository
}

// NewHandler creates a new handler
func NewHandler(widget *service.WidgetService, weather *service.WeatherService, repo service.DataRepository) *Handler {
	return &Handler{
		widget:  widget,
		weather: weather,
		repo:    repo,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.repo.Health(c.Context()); err != nil {
		storage = err.Error()
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather-widget",
		"version": "1.0.0",
		"storage": storage,
	})
}

// Index renders the widget page from the current state
func (h *Handler) Index(c *fiber.Ctx) error {
	state := h.widget.State()

	data := PageData{
		Messages: h.widget.Messages(),
		State:    state,
		Query:    c.Query("city"),
	}
	if state.Snapshot != nil {
		data.IconURL = h.weather.IconURL(state.Snapshot.Icon)
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Search handles the form submit and sends the browser back to the page
func (h *Handler) Search(c *fiber.Ctx) error {
	// fiber reuses request buffers; the city outlives the request in the journal
	city := fiberutils.CopyString(c.FormValue("city"))

	if _, ok := h.widget.Submit(c.Context(), city); !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.Redirect("/?city="+url.QueryEscape(city), fiber.StatusSeeOther)
}

// GetState returns the current display state
func (h *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.widget.State(),
	})
}

// GetWeather looks up a city without touching the widget state
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	city := fiberutils.CopyString(c.Query("city"))
	snapshot, err := h.widget.Lookup(c.Context(), city)
	if err != nil {
		return fiber.NewError(statusFor(err), h.widget.Messages().For(err))
	}

	return c.JSON(domain.WeatherResponse{
		Data:    snapshot,
		IconURL: h.weather.IconURL(snapshot.Icon),
		Success: true,
	})
}

// GetLookups returns the lookup journal within a time range
func (h *Handler) GetLookups(c *fiber.Ctx) error {
	ctx := c.Context()

	hours := c.QueryInt("hours", 24)
	if hours < 1 {
		hours = 24
	}
	hours = utils.Clamp(hours, 1, 720) // max 30 days

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.repo.GetLookups(ctx, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// statusFor maps a lookup failure to the status this API answers with
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindEmptyCity:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized, domain.KindUpstreamError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusServiceUnavailable
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
