package tile_patterns

import (
	"fmt"
	"math"
)

// Saturation points of the quality sub-scores.
const (
	FrequencySaturation  = 10
	VarietySaturation    = 5
	ProvenanceSaturation = 3

	HighQualityThreshold   = 0.7
	MediumQualityThreshold = 0.4
)

type QualityBucket string

const (
	QualityHigh   QualityBucket = "high"
	QualityMedium QualityBucket = "medium"
	QualityLow    QualityBucket = "low"
)

// QualityScore averages three sub-scores, each linear and capped at 1.0:
//
//	frequency  = min(frequency / 10, 1)
//	variety    = min(tiles / 5, 1)
//	provenance = min(sources / 3, 1)
func QualityScore(frequency, tiles, sources int) float64 {
	f := capped(frequency, FrequencySaturation)
	v := capped(tiles, VarietySaturation)
	p := capped(sources, ProvenanceSaturation)
	return (f + v + p) / 3
}

func capped(n, saturation int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Min(float64(n)/float64(saturation), 1.0)
}

func BucketFor(quality float64) QualityBucket {
	switch {
	case quality >= HighQualityThreshold:
		return QualityHigh
	case quality >= MediumQualityThreshold:
		return QualityMedium
	default:
		return QualityLow
	}
}

type QualityDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (d *QualityDistribution) add(b QualityBucket) {
	switch b {
	case QualityHigh:
		d.High++
	case QualityMedium:
		d.Medium++
	default:
		d.Low++
	}
}

// StatsReport is the database-level summary of a store.
type StatsReport struct {
	TotalPatterns          int                 `json:"total_patterns"`
	TerrainsCovered        int                 `json:"terrains_covered"`
	UniqueTiles            int                 `json:"unique_tiles"`
	AverageTilesPerPattern float64             `json:"average_tiles_per_pattern"`
	Distribution           QualityDistribution `json:"quality_distribution"`
	IndexState             string              `json:"index_state"`
}

// Stats scans all patterns once. It reads the store only, never the derived indices.
func (s *PatternStore) Stats() StatsReport {
	terrains := make(map[TerrainID]struct{})
	tiles := make(map[TileIndex]struct{})
	report := StatsReport{
		TotalPatterns: s.Len(),
		IndexState:    s.IndexState().String(),
	}

	totalTiles := 0
	s.each(func(_ Signature, p *Pattern) {
		terrains[p.CenterTerrain] = struct{}{}
		for _, t := range p.ValidTiles {
			tiles[t] = struct{}{}
		}
		totalTiles += len(p.ValidTiles)
		report.Distribution.add(p.QualityBucket())
	})

	report.TerrainsCovered = len(terrains)
	report.UniqueTiles = len(tiles)
	if report.TotalPatterns > 0 {
		report.AverageTilesPerPattern = float64(totalTiles) / float64(report.TotalPatterns)
	}
	return report
}

//
// --------------------
// Structural validation
// --------------------

type FindingKind string

const (
	// issues
	FindingEmptyTiles FindingKind = "empty_tiles"
	FindingBadContext FindingKind = "bad_context"
	// warnings
	FindingZeroFrequency FindingKind = "zero_frequency"
	FindingEmptyBucket   FindingKind = "empty_bucket"
)

// Finding is one structural integrity problem.
type Finding struct {
	Kind      FindingKind `json:"kind"`
	Signature Signature   `json:"signature,omitempty"`
	Terrain   TerrainID   `json:"terrain"`
	Message   string      `json:"message"`
}

type ValidationReport struct {
	Issues   []Finding `json:"issues"`
	Warnings []Finding `json:"warnings"`
}

func (r ValidationReport) Valid() bool {
	return len(r.Issues) == 0
}

// Validate reports structural problems. It is advisory and never mutates the store.
func (s *PatternStore) Validate() ValidationReport {
	report := ValidationReport{
		Issues:   []Finding{},
		Warnings: []Finding{},
	}

	s.each(func(sig Signature, p *Pattern) {
		if len(p.ValidTiles) == 0 {
			report.Issues = append(report.Issues, Finding{
				Kind:      FindingEmptyTiles,
				Signature: sig,
				Terrain:   p.CenterTerrain,
				Message:   "pattern has no valid tiles",
			})
		}
		if len(p.NeighborContext) != ContextSize {
			report.Issues = append(report.Issues, Finding{
				Kind:      FindingBadContext,
				Signature: sig,
				Terrain:   p.CenterTerrain,
				Message:   fmt.Sprintf("neighbor context has %d entries, want %d", len(p.NeighborContext), ContextSize),
			})
		}
		if p.Frequency <= 0 {
			report.Warnings = append(report.Warnings, Finding{
				Kind:      FindingZeroFrequency,
				Signature: sig,
				Terrain:   p.CenterTerrain,
				Message:   "pattern has zero frequency",
			})
		}
	})

	ix := s.Index()
	for _, terrain := range ix.Terrains {
		if len(ix.TerrainTiles[terrain]) == 0 {
			report.Warnings = append(report.Warnings, Finding{
				Kind:    FindingEmptyBucket,
				Terrain: terrain,
				Message: "terrain bucket is empty",
			})
		}
	}
	return report
}
