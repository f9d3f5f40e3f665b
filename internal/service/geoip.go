package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// GeoTier which lookup tier produced the geolocation result.
type GeoTier string

const (
	GeoTierPrimary  GeoTier = "primary"  // full lookup: ip, country, city, region
	GeoTierFallback GeoTier = "fallback" // ip-only lookup
	GeoTierNone     GeoTier = "none"     // both tiers failed, no fields available
)

// GeoLocation fields returned by the IP lookup. Empty fields were not
// resolved.
type GeoLocation struct {
	IPAddress string
	Country   string
	City      string
	Region    string
}

// GeoIPClient two-tier IP geolocation lookup. Best-effort: Lookup never
// returns an error, it reports which tier answered instead.
type GeoIPClient struct {
	primary  *resty.Client
	fallback *resty.Client
	logger   *zap.Logger
}

// NewGeoIPClient creates the lookup client. Neither endpoint needs auth.
// No retry policy: a failed primary call falls through to the fallback and a
// failed fallback is absorbed.
func NewGeoIPClient(primaryURL, fallbackURL string, logger *zap.Logger) *GeoIPClient {
	newClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Accept", "application/json")
	}
	return &GeoIPClient{
		primary:  newClient(primaryURL),
		fallback: newClient(fallbackURL),
		logger:   logger,
	}
}

// geoIPResponse primary service payload (ipapi.co shape).
type geoIPResponse struct {
	IP          string `json:"ip"`
	CountryName string `json:"country_name"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

// ipOnlyResponse fallback service payload (ipify shape).
type ipOnlyResponse struct {
	IP string `json:"ip"`
}

// Lookup resolves the caller's public IP and location. On primary failure it
// degrades to an IP-only lookup, and on fallback failure to nothing.
func (c *GeoIPClient) Lookup(ctx context.Context) (GeoLocation, GeoTier) {
	if loc, err := c.lookupPrimary(ctx); err == nil {
		return loc, GeoTierPrimary
	} else {
		c.logger.Debug("Primary geolocation lookup failed", zap.Error(err))
	}

	if loc, err := c.lookupFallback(ctx); err == nil {
		return loc, GeoTierFallback
	} else {
		c.logger.Debug("Fallback IP lookup failed", zap.Error(err))
	}

	return GeoLocation{}, GeoTierNone
}

func (c *GeoIPClient) lookupPrimary(ctx context.Context) (GeoLocation, error) {
	var payload geoIPResponse
	resp, err := c.primary.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/json/")
	if err != nil {
		return GeoLocation{}, fmt.Errorf("failed to call geolocation service: %w", err)
	}
	if !resp.IsSuccess() {
		return GeoLocation{}, fmt.Errorf("geolocation service returned status %d", resp.StatusCode())
	}
	return GeoLocation{
		IPAddress: payload.IP,
		Country:   payload.CountryName,
		City:      payload.City,
		Region:    payload.Region,
	}, nil
}

func (c *GeoIPClient) lookupFallback(ctx context.Context) (GeoLocation, error) {
	var payload ipOnlyResponse
	resp, err := c.fallback.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetResult(&payload).
		Get("/")
	if err != nil {
		return GeoLocation{}, fmt.Errorf("failed to call IP lookup service: %w", err)
	}
	if !resp.IsSuccess() {
		return GeoLocation{}, fmt.Errorf("IP lookup service returned status %d", resp.StatusCode())
	}
	return GeoLocation{IPAddress: payload.IP}, nil
}
