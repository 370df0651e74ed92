package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// geoJSONFeed mirrors the USGS summary feed shape.
type geoJSONFeed struct {
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Time    *int64      `json:"time"` // ms since epoch
		Place   string      `json:"place"`
		Mag     interface{} `json:"mag"`
		URL     string      `json:"url"`
		Status  string      `json:"status"`
		Tsunami int         `json:"tsunami"`
	} `json:"properties"`
	Geometry *struct {
		Coordinates []interface{} `json:"coordinates"` // lon, lat, depth_km
	} `json:"geometry"`
}

// FetchQuakes fetches a USGS GeoJSON summary feed and normalizes its
// features into flat records. Magnitude and depth are coerced numeric with
// nulls filled to zero; features without an id are dropped.
func (c *Client) FetchQuakes(ctx context.Context, url string) ([]model.Record, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var feed geoJSONFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode GeoJSON from %s: %w", url, err)
	}

	rows := make([]model.Record, 0, len(feed.Features))
	for _, f := range feed.Features {
		if f.ID == "" {
			continue
		}

		rec := model.Record{
			"id":      f.ID,
			"place":   f.Properties.Place,
			"mag":     utils.Numeric(f.Properties.Mag),
			"url":     f.Properties.URL,
			"status":  f.Properties.Status,
			"tsunami": f.Properties.Tsunami,
		}

		if f.Properties.Time != nil {
			rec["time_utc"] = time.UnixMilli(*f.Properties.Time).UTC()
		}

		var lon, lat, depth interface{}
		if f.Geometry != nil {
			coords := f.Geometry.Coordinates
			if len(coords) > 0 {
				lon = coords[0]
			}
			if len(coords) > 1 {
				lat = coords[1]
			}
			if len(coords) > 2 {
				depth = coords[2]
			}
		}
		rec["lon"] = lon
		rec["lat"] = lat
		rec["depth_km"] = utils.Numeric(depth)

		rec["SourceURL"] = url
		rows = append(rows, rec)
	}

	return rows, nil
}
