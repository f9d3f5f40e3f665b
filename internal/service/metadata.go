package service

import (
	"context"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"kiosk-data/internal/domain"
)

var (
	tabletRegexp = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	// Go's regexp has no lookahead, so "android but not mobile" (the other
	// half of the tablet rule) is checked separately in DetectDevice.
	androidRegexp = regexp.MustCompile(`(?i)android`)
	mobileRegexp  = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// MetadataCollector assembles best-effort submission context. Collection
// never fails: geolocation degrades tier by tier and the device fields are
// derived locally.
type MetadataCollector struct {
	geoip  *GeoIPClient
	logger *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

func NewMetadataCollector(geoip *GeoIPClient, logger *zap.Logger) *MetadataCollector {
	return &MetadataCollector{
		geoip:  geoip,
		logger: logger,
		now:    time.Now,
	}
}

// Collect builds the metadata for one submission attempt. userAgent is the
// raw User-Agent header of the kiosk request.
func (c *MetadataCollector) Collect(ctx context.Context, userAgent string) *domain.VisitorMetadata {
	now := c.now()
	md := &domain.VisitorMetadata{
		UserAgent:      userAgent,
		Browser:        DetectBrowser(userAgent),
		Device:         DetectDevice(userAgent),
		Timezone:       localTimezone(now),
		SubmissionDate: now.UTC().Format("2006-01-02"),
		SubmissionTime: now.Format("15:04:05"),
	}

	loc, tier := c.geoip.Lookup(ctx)
	if tier == GeoTierNone {
		c.logger.Info("Geolocation unavailable, submitting without location fields")
		return md
	}

	md.IPAddress = loc.IPAddress
	md.Country = loc.Country
	md.City = loc.City
	md.Region = loc.Region
	c.logger.Debug("Collected visitor geolocation", zap.String("tier", string(tier)))
	return md
}

// localTimezone resolves the kiosk's zone name. Go names the system zone
// "Local" when it comes from /etc/localtime, so fall back to TZ and finally
// to the zone abbreviation.
func localTimezone(t time.Time) string {
	if name := t.Location().String(); name != "" && name != "Local" {
		return name
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	zone, _ := t.Zone()
	return zone
}

// DetectBrowser maps a user agent to a browser name. Order matters: Chrome's
// agent string also contains "Safari", and Edge's contains "Chrome".
func DetectBrowser(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	case strings.Contains(userAgent, "Chrome"):
		return "Chrome"
	case strings.Contains(userAgent, "Safari"):
		return "Safari"
	case strings.Contains(userAgent, "Opera") || strings.Contains(userAgent, "OPR"):
		return "Opera"
	default:
		return "Unknown"
	}
}

// DetectDevice classifies a user agent as Tablet, Mobile or Desktop. The
// tablet check runs first because tablet agents often also match the mobile
// pattern.
func DetectDevice(userAgent string) string {
	if tabletRegexp.MatchString(userAgent) {
		return "Tablet"
	}
	if androidRegexp.MatchString(userAgent) && !strings.Contains(strings.ToLower(userAgent), "mobi") {
		return "Tablet"
	}
	if mobileRegexp.MatchString(userAgent) {
		return "Mobile"
	}
	return "Desktop"
}
