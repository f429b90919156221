package model

// GenericRecord is a schema-agnostic map for any data source
type GenericRecord map[string]interface{}

// Classification is the closed permit classification enumeration.
// Anything outside the three known labels is Unclassified and is dropped
// from classification-keyed aggregates, but still counts toward totals
// that do not depend on classification.
type Classification string

const (
	ClassificationADU          Classification = "ADU"
	ClassificationNonADU       Classification = "NON_ADU"
	ClassificationPotentialADU Classification = "POTENTIAL_ADU_CONVERSION"
	ClassificationUnknown      Classification = ""
)

// Recognized reports whether c is one of the three known labels.
func (c Classification) Recognized() bool {
	switch c {
	case ClassificationADU, ClassificationNonADU, ClassificationPotentialADU:
		return true
	}
	return false
}

// ParseClassification maps a raw cell value onto the closed enumeration.
func ParseClassification(s string) Classification {
	switch s {
	case "ADU":
		return ClassificationADU
	case "NON_ADU":
		return ClassificationNonADU
	case "POTENTIAL_ADU_CONVERSION":
		return ClassificationPotentialADU
	default:
		return ClassificationUnknown
	}
}

// PermitRecord is a single housing-construction permit row.
//
// Zero values mean "absent": Year 0 excludes the record from year-keyed
// aggregations, an empty County from county-keyed ones, and a JobValue of 0
// from every value sum and average. A legitimately zero-valued permit is
// indistinguishable from a missing one.
type PermitRecord struct {
	Year           int            `json:"year"`
	County         string         `json:"county"`
	Classification Classification `json:"classification"`
	JobValue       float64        `json:"jobValue"`
}

// HasYear reports whether the record carries a usable permit year.
func (r PermitRecord) HasYear() bool { return r.Year != 0 }

// HasCounty reports whether the record carries a jurisdiction.
func (r PermitRecord) HasCounty() bool { return r.County != "" }

// HasJobValue reports whether the record contributes to value aggregations.
func (r PermitRecord) HasJobValue() bool { return r.JobValue != 0 }
