package permits

import (
	"permit-dashboard/internal/model"
	"permit-dashboard/pkg/utils"
)

// ------------------- Record Coercion -------------------
// Upstream parsers hand us loosely-typed rows keyed by CSV headers. Coercion
// is permissive on types and silent on absence: a field that is missing or
// unusable becomes the zero value, and the aggregations exclude it per-field
// rather than rejecting the record.

// FromGeneric coerces one raw row into a PermitRecord.
func FromGeneric(rec model.GenericRecord) model.PermitRecord {
	p := model.PermitRecord{}

	if v, ok := lookup(rec, "year", "Year", "YEAR"); ok {
		p.Year = int(utils.Numeric(v))
	}
	if v, ok := lookup(rec, "county", "County", "COUNTY"); ok {
		if s, ok := v.(string); ok {
			p.County = s
		}
	}
	if v, ok := lookup(rec, "classification", "Classification", "type"); ok {
		if s, ok := v.(string); ok {
			p.Classification = model.ParseClassification(s)
		}
	}
	if v, ok := lookup(rec, "jobValue", "job_value", "JobValue"); ok {
		if jv := utils.Numeric(v); jv > 0 {
			p.JobValue = jv
		}
	}

	return p
}

// CoerceRecords converts a raw row set into an immutable permit snapshot.
func CoerceRecords(rows []model.GenericRecord) []model.PermitRecord {
	records := make([]model.PermitRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromGeneric(row))
	}
	return records
}

func lookup(rec model.GenericRecord, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
