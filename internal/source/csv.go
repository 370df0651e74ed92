package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go-elt-dashboard/internal/model"
	"go-elt-dashboard/pkg/utils"
)

// FetchCSV fetches a CSV file over HTTP and parses it into records.
func (c *Client) FetchCSV(ctx context.Context, url string) ([]model.Record, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	rows, err := ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse CSV from %s: %w", url, err)
	}

	for _, rec := range rows {
		rec["SourceURL"] = url
	}
	return rows, nil
}

// ReadCSV parses header-driven CSV into records. Cell values are parsed
// into int/float/string; header names are trimmed and stripped of quotes.
func ReadCSV(r io.Reader) ([]model.Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range headers {
		clean := strings.TrimSpace(h)
		clean = strings.ReplaceAll(clean, `"`, "")
		headers[i] = clean
	}

	var rows []model.Record
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		rec := make(model.Record, len(headers))
		for i, h := range headers {
			if i < len(record) {
				rec[h] = utils.ParseValue(record[i])
			}
		}
		rows = append(rows, rec)
	}

	return rows, nil
}
