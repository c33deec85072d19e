package geo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLocation = `{"status":"success","country":"Canada","regionName":"Ontario","city":"Toronto","lat":43.6532,"lon":-79.3832,"query":"203.0.113.7"}`

func newServers(t *testing.T) (ipinfo, ipapi *httptest.Server) {
	t.Helper()
	ipinfo = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		_, _ = io.WriteString(w, `{"ip":"203.0.113.7","city":"ignored"}`)
	}))
	ipapi = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/203.0.113.7" {
			_, _ = io.WriteString(w, `{"status":"fail","message":"invalid query","query":"x"}`)
			return
		}
		_, _ = io.WriteString(w, sampleLocation)
	}))
	t.Cleanup(ipinfo.Close)
	t.Cleanup(ipapi.Close)
	return ipinfo, ipapi
}

func TestClient_Lookup(t *testing.T) {
	ipinfo, ipapi := newServers(t)
	c := &Client{IPInfoURL: ipinfo.URL, Token: "secret", IPAPIURL: ipapi.URL}

	loc, err := c.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", loc.IP)
	assert.Equal(t, "Canada", loc.Country)
	assert.Equal(t, "Ontario", loc.RegionName)
	assert.Equal(t, "Toronto", loc.City)
	assert.InDelta(t, 43.6532, loc.Lat, 1e-9)
	assert.InDelta(t, -79.3832, loc.Lon, 1e-9)
	assert.JSONEq(t, sampleLocation, string(loc.Raw))
}

func TestClient_LocateFail(t *testing.T) {
	_, ipapi := newServers(t)
	c := &Client{IPAPIURL: ipapi.URL}

	_, err := c.Locate(context.Background(), "not-an-ip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query")
}

func TestClient_IPErrors(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer down.Close()

	_, err := (&Client{IPInfoURL: down.URL, Token: "secret"}).IP(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer empty.Close()

	_, err = (&Client{IPInfoURL: empty.URL}).IP(context.Background())
	assert.Error(t, err)
}

func TestClient_Forward(t *testing.T) {
	var got []byte
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got, _ = io.ReadAll(r.Body)
	}))
	defer sink.Close()

	var loc Location
	require.NoError(t, json.Unmarshal([]byte(sampleLocation), &loc))

	require.NoError(t, (&Client{}).Forward(context.Background(), sink.URL+"/log-location", loc))
	assert.JSONEq(t, sampleLocation, string(got))
}

func TestClient_ForwardRejected(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	err := (&Client{}).Forward(context.Background(), sink.URL, Location{IP: "1.2.3.4"})
	assert.Error(t, err)
}

func TestLocation_Text(t *testing.T) {
	loc := Location{Country: "Canada", RegionName: "Ontario", City: "Toronto", Lat: 43.65, Lon: -79.38}
	assert.Equal(t, "Country: Canada\nRegion: Ontario\nCity: Toronto\nLatitude: 43.65\nLongitude: -79.38", loc.Text())
}

func TestLocation_MarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Location{IP: "1.2.3.4", Country: "X"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"1.2.3.4","country":"X","regionName":"","city":"","lat":0,"lon":0}`, string(out))
}
