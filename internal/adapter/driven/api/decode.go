package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// decodeDataset decodes the series of one category. Series missing from the payload or
// set to null are left out of the dataset; the renderer shows them as empty.
func decodeDataset(body []byte, layout entity.CategoryLayout) (entity.ChartDataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("malformed response: expected an object")
	}

	ds := make(entity.ChartDataset, len(layout.Series))
	for _, series := range layout.Series {
		msg, ok := raw[series.Key]
		if !ok || isNull(msg) {
			continue
		}
		points, err := decodeSeries(msg, series.LabelKeys)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", series.Key, err)
		}
		ds[series.Key] = points
	}
	return ds, nil
}

func decodeSeries(msg json.RawMessage, labelKeys []string) ([]entity.SeriesPoint, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(msg, &rows); err != nil {
		return nil, fmt.Errorf("expected an array of points: %w", err)
	}

	points := make([]entity.SeriesPoint, 0, len(rows))
	for i, row := range rows {
		label, err := decodeLabel(row, labelKeys)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		total, err := decodeTotal(row["total"])
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, entity.SeriesPoint{Label: label, Total: total})
	}
	return points, nil
}

func decodeLabel(row map[string]json.RawMessage, keys []string) (string, error) {
	for _, key := range keys {
		msg, ok := row[key]
		if !ok {
			continue
		}
		if isNull(msg) {
			return NullLabel, nil
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil {
			return s, nil
		}
		var n json.Number
		if err := json.Unmarshal(msg, &n); err == nil {
			return n.String(), nil
		}
		return "", fmt.Errorf("label %q is neither a string nor a number", key)
	}
	return "", fmt.Errorf("missing label key %v", keys)
}

func decodeTotal(msg json.RawMessage) (int, error) {
	if msg == nil {
		return 0, fmt.Errorf("missing total")
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err != nil {
		return 0, fmt.Errorf("total is not a number: %s", msg)
	}
	total, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("total is not an integer: %s", n)
	}
	if total < 0 {
		return 0, fmt.Errorf("total is negative: %d", total)
	}
	return int(total), nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}
