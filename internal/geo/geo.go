// Package geo resolves the caller's public IP and its approximate location
// (ipinfo.io for the address, ip-api.com for the location) and forwards the
// result to a logging endpoint.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultIPInfoURL = "https://ipinfo.io"
	DefaultIPAPIURL  = "http://ip-api.com"
	DefaultTimeout   = 10 * time.Second
)

// maxResponseSize bounds lookup responses.
const maxResponseSize = 1 << 20

// Location is an ip-api.com lookup result. Raw keeps the document as
// received so it can be forwarded unchanged.
type Location struct {
	IP         string  `json:"query"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`

	Raw json.RawMessage `json:"-"`
}

type locationJSON Location

// UnmarshalJSON decodes a location and keeps the raw document.
func (l *Location) UnmarshalJSON(data []byte) error {
	var v locationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Location(v)
	l.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the raw document when there is one.
func (l Location) MarshalJSON() ([]byte, error) {
	if len(l.Raw) > 0 {
		return l.Raw, nil
	}
	return json.Marshal(locationJSON(l))
}

// Text renders the location as a short human-readable block.
func (l Location) Text() string {
	return strings.Join([]string{
		"Country: " + l.Country,
		"Region: " + l.RegionName,
		"City: " + l.City,
		"Latitude: " + strconv.FormatFloat(l.Lat, 'f', -1, 64),
		"Longitude: " + strconv.FormatFloat(l.Lon, 'f', -1, 64),
	}, "\n")
}

// Client performs lookups. Zero fields fall back to the public services and
// DefaultTimeout.
type Client struct {
	IPInfoURL string
	Token     string
	IPAPIURL  string
	HTTP      *http.Client
	Logger    *slog.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Lookup resolves the caller's public IP and then its location.
func (c *Client) Lookup(ctx context.Context) (Location, error) {
	ip, err := c.IP(ctx)
	if err != nil {
		return Location{}, err
	}
	c.logger().DebugContext(ctx, "resolved public ip", "ip", ip)
	return c.Locate(ctx, ip)
}

// IP asks ipinfo.io for the caller's public address.
func (c *Client) IP(ctx context.Context) (string, error) {
	base := c.IPInfoURL
	if base == "" {
		base = DefaultIPInfoURL
	}
	u := strings.TrimRight(base, "/") + "/json"
	if c.Token != "" {
		u += "?token=" + url.QueryEscape(c.Token)
	}

	var info struct {
		IP string `json:"ip"`
	}
	if err := c.getJSON(ctx, u, &info); err != nil {
		return "", fmt.Errorf("fetching ip address: %w", err)
	}
	if info.IP == "" {
		return "", errors.New("fetching ip address: response has no ip")
	}
	return info.IP, nil
}

// Locate asks ip-api.com where ip is.
func (c *Client) Locate(ctx context.Context, ip string) (Location, error) {
	base := c.IPAPIURL
	if base == "" {
		base = DefaultIPAPIURL
	}
	u := strings.TrimRight(base, "/") + "/json/" + url.PathEscape(ip)

	var raw json.RawMessage
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return Location{}, fmt.Errorf("resolving geolocation: %w", err)
	}

	var status struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &status); err != nil {
		return Location{}, fmt.Errorf("resolving geolocation: %w", err)
	}
	if status.Status == "fail" {
		return Location{}, fmt.Errorf("resolving geolocation for %s: %s", ip, status.Message)
	}

	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, fmt.Errorf("resolving geolocation: %w", err)
	}
	if loc.IP == "" {
		loc.IP = ip
	}
	return loc, nil
}

// Forward posts the location document to endpoint.
func (c *Client) Forward(ctx context.Context, endpoint string, loc Location) error {
	body, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("encoding location: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("sending location: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sending location: %s returned %s", endpoint, resp.Status)
	}
	c.logger().InfoContext(ctx, "location data sent", "endpoint", endpoint)
	return nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redact(ue.URL)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned %s", redact(u), resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// redact drops the query string, which may carry the ipinfo token.
func redact(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}
