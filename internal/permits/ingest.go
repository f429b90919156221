package permits

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"permit-dashboard/internal/model"
	"permit-dashboard/pkg/utils"
)

// ------------------- Ingestion -------------------
// The aggregation core consumes an already-materialized snapshot; ingestion
// is the collaborator that produces it. CSV rows become loosely-typed
// GenericRecords keyed by cleaned header names, with cell values coerced
// permissively (numeric-looking strings become numbers).

// LoadRecords reads a permit CSV from a local path or HTTP URL and returns
// the coerced snapshot.
func LoadRecords(ctx context.Context, pathOrURL string) ([]model.PermitRecord, error) {
	fmt.Printf("➡️ Loading permits from: %s\n", pathOrURL)

	var reader io.Reader
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to GET CSV: %w", err)
		}
		defer resp.Body.Close()
		reader = resp.Body
	} else {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	rows, err := ReadCSV(ctx, reader)
	if err != nil {
		return nil, err
	}

	fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", len(rows), pathOrURL)
	return CoerceRecords(rows), nil
}

// ReadCSV parses CSV content into raw rows. Header names are trimmed and
// stripped of quotes; malformed rows are skipped rather than failing the
// whole load.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.GenericRecord, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	var rows []model.GenericRecord
	for {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			return rows, nil
		} else if err != nil {
			continue
		}

		row := make(model.GenericRecord, len(headers))
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			row[h] = utils.ParseValue(record[i])
		}
		rows = append(rows, row)
	}
}

// ReadJSONRows parses a JSON array of row objects, the shape a manual
// upload or an API source produces.
func ReadJSONRows(data []byte) ([]model.GenericRecord, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON rows: %w", err)
	}

	rows := make([]model.GenericRecord, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, model.GenericRecord(m))
	}
	return rows, nil
}

// LoadOrSample loads the fixed-path dataset, falling back to the generated
// sample when the file is missing or unreadable.
func LoadOrSample(ctx context.Context, pathOrURL string) ([]model.PermitRecord, string) {
	if pathOrURL != "" {
		records, err := LoadRecords(ctx, pathOrURL)
		if err == nil {
			return records, pathOrURL
		}
		fmt.Printf("⚠️ Falling back to sample data: %v\n", err)
	}
	return SampleRecords(), "sample"
}
