package httpapi

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/snorkel-forecast/internal/report"
	"github.com/i474232898/snorkel-forecast/internal/weather"
)

var validate = validator.New()

// ReportBuilder is the part of weather.Service the handlers need.
type ReportBuilder interface {
	BuildReport(ctx context.Context, loc weather.Location, opts weather.ReportOptions) (weather.Report, error)
}

// Defaults fill in query parameters the caller leaves out.
type Defaults struct {
	Site    weather.Location
	Options weather.ReportOptions
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, builder ReportBuilder, defaults Defaults) {
	v1 := app.Group("/api/v1")

	v1.Get("/snorkel/forecast", func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c, defaults)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rep, err := builder.BuildReport(c.UserContext(), q.location(), q.options())
		if err != nil {
			if errors.Is(err, weather.ErrInvalidOptions) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if errors.Is(err, weather.ErrFetchFailed) {
				return fiber.NewError(fiber.StatusBadGateway, "upstream forecast unavailable")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build forecast")
		}

		// Bathing data belongs to the configured site only.
		if q.Custom {
			rep.Bathing = nil
		}

		if q.Format == "text" {
			var buf bytes.Buffer
			if err := report.Render(&buf, rep); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to render forecast")
			}
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Send(buf.Bytes())
		}

		return c.JSON(rep)
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Name   string
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lon    float64 `validate:"gte=-180,lte=180"`
	Hour   int     `validate:"gte=0,lte=23"`
	Days   int     `validate:"gte=1,lte=10"`
	Format string  `validate:"oneof=json text"`
	Custom bool
}

func (q forecastQuery) location() weather.Location {
	return weather.Location{Name: q.Name, Lat: q.Lat, Lon: q.Lon}
}

func (q forecastQuery) options() weather.ReportOptions {
	return weather.ReportOptions{Hour: q.Hour, Days: q.Days}
}

func parseForecastQuery(c *fiber.Ctx, defaults Defaults) (forecastQuery, error) {
	q := forecastQuery{
		Name:   defaults.Site.Name,
		Lat:    defaults.Site.Lat,
		Lon:    defaults.Site.Lon,
		Hour:   defaults.Options.Hour,
		Days:   defaults.Options.Days,
		Format: c.Query("format", "json"),
	}

	lat, lon := c.Query("lat"), c.Query("lon")
	if (lat == "") != (lon == "") {
		return q, errors.New("lat and lon must be given together")
	}
	if lat != "" {
		var err error
		if q.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
			return q, errors.New("invalid lat")
		}
		if q.Lon, err = strconv.ParseFloat(lon, 64); err != nil {
			return q, errors.New("invalid lon")
		}
		q.Name = c.Query("name", "custom site")
		q.Custom = true
	}

	if v := c.Query("hour"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("invalid hour")
		}
		q.Hour = n
	}
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("invalid days")
		}
		q.Days = n
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
