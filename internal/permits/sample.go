package permits

import (
	"math/rand"

	"permit-dashboard/internal/model"
)

// Fixed seed keeps the fallback dataset reproducible across runs, so the
// demo dashboard always shows the same charts.
const sampleSeed = 20180101

var sampleCounties = []string{
	"Alameda", "Contra Costa", "Fresno", "Los Angeles", "Marin",
	"Orange", "Riverside", "Sacramento", "San Bernardino", "San Diego",
	"San Francisco", "San Mateo", "Santa Clara", "Sonoma", "Ventura",
}

// SampleRecords generates the deterministic fallback dataset used when no
// permit CSV is available.
func SampleRecords() []model.PermitRecord {
	rng := rand.New(rand.NewSource(sampleSeed))

	var records []model.PermitRecord
	for year := 2018; year <= 2023; year++ {
		// ADU volume grows over the years, the way the real dataset does.
		aduWeight := 10 + (year-2018)*6

		for _, county := range sampleCounties {
			countyVolume := 8 + rng.Intn(20)
			for i := 0; i < countyVolume; i++ {
				roll := rng.Intn(100)

				var class model.Classification
				var value float64
				switch {
				case roll < aduWeight:
					class = model.ClassificationADU
					value = 80000 + float64(rng.Intn(220000))
				case roll < aduWeight+8:
					class = model.ClassificationPotentialADU
					value = 40000 + float64(rng.Intn(100000))
				default:
					class = model.ClassificationNonADU
					value = 150000 + float64(rng.Intn(650000))
				}

				// A few permits come in with no reported job value.
				if rng.Intn(20) == 0 {
					value = 0
				}

				records = append(records, model.PermitRecord{
					Year:           year,
					County:         county,
					Classification: class,
					JobValue:       value,
				})
			}
		}
	}
	return records
}
