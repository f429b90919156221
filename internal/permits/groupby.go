package permits

import (
	"sort"

	"permit-dashboard/internal/model"
	"permit-dashboard/pkg/utils"
)

// ------------------- Group-By Engine -------------------
// Every derived series is the same shape of computation: bucket records by a
// key (year or county), accumulate per-classification counts and job-value
// sums inside each bucket, then read the bucket out in a deterministic
// order. The six dashboard variants collapse into configurations of this
// one engine.

// bucket accumulates one group's counts and job-value sums.
//
// Job values follow the truthiness rule: a record contributes to sums and
// to the contributing-record counts only when its job value is non-zero.
type bucket struct {
	total int // every record in the bucket, classified or not

	counts map[model.Classification]int // recognized classifications only

	sums        map[model.Classification]float64
	valueCounts map[model.Classification]int

	sumAll        float64 // truthy job values across all classifications
	valueCountAll int
}

func newBucket() *bucket {
	return &bucket{
		counts:      make(map[model.Classification]int),
		sums:        make(map[model.Classification]float64),
		valueCounts: make(map[model.Classification]int),
	}
}

func (b *bucket) add(r model.PermitRecord) {
	b.total++

	recognized := r.Classification.Recognized()
	if recognized {
		b.counts[r.Classification]++
	}

	if !r.HasJobValue() {
		return
	}
	b.sumAll += r.JobValue
	b.valueCountAll++
	if recognized {
		b.sums[r.Classification] += r.JobValue
		b.valueCounts[r.Classification]++
	}
}

// count returns the number of records with the given classification.
func (b *bucket) count(c model.Classification) int { return b.counts[c] }

// recognizedTotal is the number of records carrying a known classification.
func (b *bucket) recognizedTotal() int {
	return b.counts[model.ClassificationADU] +
		b.counts[model.ClassificationNonADU] +
		b.counts[model.ClassificationPotentialADU]
}

// avgThousands returns the average job value for one classification,
// expressed in thousands and rounded to the nearest integer. ok is false
// when no record of that classification contributed a truthy job value.
func (b *bucket) avgThousands(c model.Classification) (avg int, ok bool) {
	n := b.valueCounts[c]
	if n == 0 {
		return 0, false
	}
	return utils.RoundInt(b.sums[c] / float64(n) / 1000), true
}

// avgThousandsAll is avgThousands across every classification.
func (b *bucket) avgThousandsAll() (avg int, count int, ok bool) {
	if b.valueCountAll == 0 {
		return 0, 0, false
	}
	return utils.RoundInt(b.sumAll / float64(b.valueCountAll) / 1000), b.valueCountAll, true
}

// groupBy buckets records by the key extractor. Records for which the
// extractor reports ok=false are excluded from the grouping entirely.
func groupBy[K comparable](records []model.PermitRecord, keyOf func(model.PermitRecord) (K, bool)) map[K]*bucket {
	groups := make(map[K]*bucket)
	for _, r := range records {
		key, ok := keyOf(r)
		if !ok {
			continue
		}
		b, exists := groups[key]
		if !exists {
			b = newBucket()
			groups[key] = b
		}
		b.add(r)
	}
	return groups
}

// sortedKeys returns the group keys in ascending order. Output ordering is
// always explicit; map iteration order never leaks into a series.
func sortedKeys[K int | string](groups map[K]*bucket) []K {
	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Key extractors shared by the series operations.

func byYear(r model.PermitRecord) (int, bool) {
	return r.Year, r.HasYear()
}

func byCounty(r model.PermitRecord) (string, bool) {
	return r.County, r.HasCounty()
}
