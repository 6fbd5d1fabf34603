// Package weather fetches historic hourly weather observations and flattens
// them into sensor readings for the frame pipeline. It is the out-of-core
// collaborator that produces the delimited reading rows; retries, if any,
// belong to its callers.
package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
)

// DefaultBaseURL is the worldweatheronline past-weather endpoint.
const DefaultBaseURL = "https://api.worldweatheronline.com/premium/v1/past-weather.ashx"

// Config holds client settings.
type Config struct {
	BaseURL  string
	APIKey   string
	Location string
	Timeout  time.Duration
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "API key is required")
	}
	if c.Location == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "location is required")
	}
	return nil
}

// Client queries the past-weather API.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a weather client from configuration.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Client", "NewClient", "config validation")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		http:   resty.New().SetTimeout(cfg.Timeout),
		cfg:    cfg,
		logger: logger.With("component", "weather"),
	}, nil
}

// apiResponse mirrors the slice of the past-weather JSON the pipeline needs.
// The API returns numeric fields as strings.
type apiResponse struct {
	Data struct {
		Weather []struct {
			Date   string `json:"date"`
			Hourly []struct {
				Time     string `json:"time"`
				TempC    string `json:"tempC"`
				Humidity string `json:"humidity"`
			} `json:"hourly"`
		} `json:"weather"`
	} `json:"data"`
}

// PastWeather fetches hourly observations for the date range, inclusive on
// both ends, and returns them as readings in chronological order.
func (c *Client) PastWeather(ctx context.Context, from, to time.Time) ([]payload.SensorData, error) {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       c.cfg.Location,
			"date":    from.Format(timestamp.DateLayout),
			"enddate": to.Format(timestamp.DateLayout),
			"tp":      "1", // hourly period
			"format":  "json",
			"key":     c.cfg.APIKey,
		}).
		SetResult(&out).
		Get(c.cfg.BaseURL)
	if err != nil {
		return nil, errors.WrapTransient(errors.ErrFetchFailed, "Client", "PastWeather", err.Error())
	}
	if resp.IsError() {
		return nil, errors.WrapTransient(errors.ErrFetchFailed, "Client", "PastWeather",
			fmt.Sprintf("status %d from %s", resp.StatusCode(), c.cfg.BaseURL))
	}

	readings, err := flatten(out)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched past weather",
		"location", c.cfg.Location,
		"from", from.Format(timestamp.DateLayout),
		"to", to.Format(timestamp.DateLayout),
		"readings", len(readings))
	return readings, nil
}

// flatten walks the daily/hourly nesting into flat readings. Hour fields
// come as "0", "100", ..., "2300".
func flatten(out apiResponse) ([]payload.SensorData, error) {
	var readings []payload.SensorData
	for _, day := range out.Data.Weather {
		date, err := time.Parse(timestamp.DateLayout, day.Date)
		if err != nil {
			return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "Client", "PastWeather",
				fmt.Sprintf("date %q: %v", day.Date, err))
		}
		for _, hour := range day.Hourly {
			hhmm, err := strconv.Atoi(hour.Time)
			if err != nil {
				return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "Client", "PastWeather",
					fmt.Sprintf("hour %q: %v", hour.Time, err))
			}
			temp, err := strconv.ParseFloat(hour.TempC, 64)
			if err != nil {
				return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "Client", "PastWeather",
					fmt.Sprintf("tempC %q: %v", hour.TempC, err))
			}
			humi, err := strconv.ParseFloat(hour.Humidity, 64)
			if err != nil {
				return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "Client", "PastWeather",
					fmt.Sprintf("humidity %q: %v", hour.Humidity, err))
			}

			readings = append(readings, payload.SensorData{
				Timestamp:   date.Add(time.Duration(hhmm/100) * time.Hour),
				Temperature: temp,
				Humidity:    humi,
			})
		}
	}
	return readings, nil
}
