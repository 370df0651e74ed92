package source

import (
	"context"
	"fmt"
	"strings"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// covid snapshot columns coerced numeric on ingest
var covidNumericFields = []string{"cases", "deaths", "recovered", "active", "population"}

// FetchCovid fetches a COVID-19 statistics CSV snapshot and normalizes it
// to per-country rows. Count columns are coerced numeric with missing
// values filled to zero; rows without a country identifier are dropped.
func (c *Client) FetchCovid(ctx context.Context, url string) ([]model.Record, error) {
	rows, err := c.FetchCSV(ctx, url)
	if err != nil {
		return nil, err
	}

	out := make([]model.Record, 0, len(rows))
	for _, rec := range rows {
		country := countryOf(rec)
		if country == "" {
			continue
		}
		rec["id"] = country
		rec["country"] = country

		for _, field := range covidNumericFields {
			if v, ok := lookupFold(rec, field); ok {
				rec[field] = utils.Numeric(v)
			} else {
				rec[field] = 0.0
			}
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("covid snapshot %s: no usable rows", url)
	}
	return out, nil
}

// countryOf finds the country column under its common spellings.
func countryOf(rec model.Record) string {
	for _, key := range []string{"country", "Country", "Country_Region", "Country/Region", "location"} {
		if v, ok := rec[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// lookupFold finds a field by case-insensitive name.
func lookupFold(rec model.Record, field string) (interface{}, bool) {
	if v, ok := rec[field]; ok {
		return v, true
	}
	for k, v := range rec {
		if strings.EqualFold(k, field) {
			return v, true
		}
	}
	return nil, false
}
