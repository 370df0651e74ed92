package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "us7000abcd",
      "properties": {
        "mag": 5.6,
        "place": "42 km SW of Example, Alaska",
        "time": 1756500000000,
        "url": "https://earthquake.usgs.gov/earthquakes/eventpage/us7000abcd",
        "status": "reviewed",
        "tsunami": 0
      },
      "geometry": {"type": "Point", "coordinates": [-151.5, 61.2, 42.7]}
    },
    {
      "type": "Feature",
      "id": "us7000nullmag",
      "properties": {"mag": null, "place": "offshore", "time": 1756500060000, "tsunami": 0},
      "geometry": {"type": "Point", "coordinates": [10.0, 20.0]}
    },
    {
      "type": "Feature",
      "id": "",
      "properties": {"mag": 1.0, "time": 1756500120000},
      "geometry": null
    }
  ]
}`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchQuakes_NormalizesFeatures(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	client := NewClient(5 * time.Second)

	rows, err := client.FetchQuakes(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, rows, 2, "the feature without an id is dropped")

	first := rows[0]
	assert.Equal(t, "us7000abcd", first["id"])
	assert.Equal(t, 5.6, first["mag"])
	assert.Equal(t, 42.7, first["depth_km"])
	assert.Equal(t, -151.5, first["lon"])
	assert.Equal(t, 61.2, first["lat"])
	assert.Equal(t, "42 km SW of Example, Alaska", first["place"])
	assert.Equal(t, srv.URL, first["SourceURL"])

	ts, ok := first["time_utc"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.UnixMilli(1756500000000).UTC(), ts)
}

func TestFetchQuakes_CoercesNullMagnitudeToZero(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)
	client := NewClient(5 * time.Second)

	rows, err := client.FetchQuakes(context.Background(), srv.URL)
	require.NoError(t, err)

	second := rows[1]
	assert.Equal(t, 0.0, second["mag"], "null magnitude fills to zero")
	assert.Equal(t, 0.0, second["depth_km"], "missing depth fills to zero")
	assert.Equal(t, 20.0, second["lat"], "two-element coordinates still carry lon/lat")
}

func TestFetchQuakes_HTTPError(t *testing.T) {
	srv := feedServer(t, http.StatusInternalServerError, "boom")
	client := NewClient(5 * time.Second)

	_, err := client.FetchQuakes(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFetchQuakes_BadJSON(t *testing.T) {
	srv := feedServer(t, http.StatusOK, "{not json")
	client := NewClient(5 * time.Second)

	_, err := client.FetchQuakes(context.Background(), srv.URL)
	require.Error(t, err)
}
