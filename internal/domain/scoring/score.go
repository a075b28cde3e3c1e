package scoring

import (
	"math"

	"skill-align/internal/domain/vector"
)

// Breakdown is the full output of one user/job comparison. All four values
// are in [0,1].
type Breakdown struct {
	Jaccard   float64 `json:"jaccard"`
	Cosine    float64 `json:"cosine"`
	Coverage  float64 `json:"coverage"`
	Composite float64 `json:"composite"`
}

// Score compares a user vector against a job vector. It is a pure function:
// identical inputs always produce identical outputs, which the ranker relies
// on for cache correctness and idempotent recomputation. Every ratio with a
// zero denominator is defined to be 0.
func Score(user, job vector.Vector, idf IDF, w Weights) Breakdown {
	if len(user) == 0 || len(job) == 0 {
		return Breakdown{}
	}

	var inter, union int
	union = len(user)
	for id := range job {
		if _, ok := user[id]; ok {
			inter++
		} else {
			union++
		}
	}

	jaccard := 0.0
	if union > 0 {
		jaccard = float64(inter) / float64(union)
	}

	// Cosine over TF-IDF weighted coordinates of the shared vocabulary.
	var dot, userNorm, jobNorm float64
	for id, uw := range user {
		f := idf.Weight(id)
		uv := uw * f
		userNorm += uv * uv
		if jw, ok := job[id]; ok {
			dot += uv * (jw * f)
		}
	}
	for id, jw := range job {
		f := idf.Weight(id)
		jv := jw * f
		jobNorm += jv * jv
	}

	cosine := 0.0
	if userNorm > 0 && jobNorm > 0 {
		cosine = dot / (math.Sqrt(userNorm) * math.Sqrt(jobNorm))
	}

	// Coverage: fraction of the job's required weight the user satisfies. A
	// skill present in the user vector counts with its full job-side weight.
	var jobTotal, covered float64
	for id, jw := range job {
		jobTotal += jw
		if _, ok := user[id]; ok {
			covered += jw
		}
	}
	coverage := 0.0
	if jobTotal > 0 {
		coverage = covered / jobTotal
	}

	jaccard = vector.Clip01(jaccard)
	cosine = vector.Clip01(cosine)
	coverage = vector.Clip01(coverage)

	composite := vector.Clip01(w.Jaccard*jaccard + w.Cosine*cosine + w.Coverage*coverage)

	return Breakdown{
		Jaccard:   jaccard,
		Cosine:    cosine,
		Coverage:  coverage,
		Composite: composite,
	}
}
