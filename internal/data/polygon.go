package data

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/purduemomentum/options-pricing-project/internal/logger"
)

// polygonDataProvider implements Provider against Polygon-style aggregate
// endpoints. The API key is injected by the caller; there is no compiled-in
// default.
type polygonDataProvider struct {
	client    *resty.Client
	secondary Provider
}

// aggsResp models the daily-aggregates response shared by the /range and
// /prev endpoints.
type aggsResp struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Results []struct {
		Time  int64   `json:"t"`
		Open  float64 `json:"o"`
		High  float64 `json:"h"`
		Low   float64 `json:"l"`
		Close float64 `json:"c"`
		Vol   float64 `json:"v"`
	} `json:"results"`
}

// NewPolygonDataProvider constructs a Polygon-backed provider with an
// optional secondary consulted on failure.
func NewPolygonDataProvider(apiKey string, secondary Provider) Provider {
	logger.Infof("initializing polygon data provider")
	client := resty.New().
		SetBaseURL("https://api.polygon.io").
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetQueryParam("apiKey", apiKey)
	return &polygonDataProvider{client: client, secondary: secondary}
}

// newPolygonDataProviderAt is the test seam: same provider, arbitrary base URL.
func newPolygonDataProviderAt(baseURL, apiKey string, secondary Provider) *polygonDataProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetQueryParam("apiKey", apiKey)
	return &polygonDataProvider{client: client, secondary: secondary}
}

func (polygonDataProv *polygonDataProvider) Secondary() Provider {
	return polygonDataProv.secondary
}

func (polygonDataProv *polygonDataProvider) GetCurrentPrice(ticker string) (float64, error) {
	var body aggsResp
	resp, err := polygonDataProv.client.R().
		SetResult(&body).
		SetPathParam("ticker", ticker).
		Get("/v2/aggs/ticker/{ticker}/prev")
	if err != nil || !resp.IsSuccess() || len(body.Results) == 0 {
		if polygonDataProv.secondary != nil {
			logger.Debugf("polygon prev-close for %s failed, trying secondary", ticker)
			return polygonDataProv.secondary.GetCurrentPrice(ticker)
		}
		if err != nil {
			return 0, fmt.Errorf("polygon prev close for %s: %w", ticker, err)
		}
		return 0, fmt.Errorf("polygon prev close for %s: status %d, %d results",
			ticker, resp.StatusCode(), len(body.Results))
	}

	price := body.Results[len(body.Results)-1].Close
	logger.Debugf("polygon prev close %s = %.4f", ticker, price)
	return price, nil
}

func (polygonDataProv *polygonDataProvider) GetHistoricalCloses(ticker string, lookbackDays int) ([]float64, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -lookbackDays)

	var body aggsResp
	resp, err := polygonDataProv.client.R().
		SetResult(&body).
		SetPathParams(map[string]string{
			"ticker": ticker,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
		}).
		SetQueryParams(map[string]string{
			"adjusted": "true",
			"sort":     "asc",
			"limit":    "50000",
		}).
		Get("/v2/aggs/ticker/{ticker}/range/1/day/{from}/{to}")
	if err != nil || !resp.IsSuccess() {
		if polygonDataProv.secondary != nil {
			logger.Debugf("polygon aggs for %s failed, trying secondary", ticker)
			return polygonDataProv.secondary.GetHistoricalCloses(ticker, lookbackDays)
		}
		if err != nil {
			return nil, fmt.Errorf("polygon aggs for %s: %w", ticker, err)
		}
		return nil, fmt.Errorf("polygon aggs for %s: status %d", ticker, resp.StatusCode())
	}

	closes := make([]float64, 0, len(body.Results))
	for _, r := range body.Results {
		closes = append(closes, r.Close)
	}
	logger.Debugf("polygon aggs %s: %d daily closes over %d days", ticker, len(closes), lookbackDays)
	return closes, nil
}
