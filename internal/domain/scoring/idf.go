package scoring

import (
	"math"

	"github.com/google/uuid"
)

// IDF holds corpus-wide inverse document frequencies over all job postings.
// It is rebuilt on an explicit refresh schedule, never per request, and is
// safe for concurrent reads. The zero value weights every skill equally.
type IDF struct {
	Docs    int                   `json:"docs"`
	Weights map[uuid.UUID]float64 `json:"weights"`
}

// NewIDF computes smooth inverse document frequencies from per-skill document
// counts: ln((1+N)/(1+df)) + 1. The smooth form keeps every weight >= 1, so a
// non-empty vector never collapses to a zero norm.
func NewIDF(totalDocs int, docFreq map[uuid.UUID]int) IDF {
	if totalDocs < 0 {
		totalDocs = 0
	}
	weights := make(map[uuid.UUID]float64, len(docFreq))
	for id, df := range docFreq {
		if id == uuid.Nil {
			continue
		}
		if df < 0 {
			df = 0
		}
		weights[id] = math.Log(float64(1+totalDocs)/float64(1+df)) + 1
	}
	return IDF{Docs: totalDocs, Weights: weights}
}

// Weight returns the IDF factor for a skill. Skills absent from the corpus at
// refresh time fall back to 1 so they neither vanish nor dominate.
func (idf IDF) Weight(id uuid.UUID) float64 {
	if idf.Weights == nil {
		return 1
	}
	w, ok := idf.Weights[id]
	if !ok || w <= 0 {
		return 1
	}
	return w
}
