package main

import (
	"fmt"
	"io"
	"strings"

	tg "github.com/jtomasevic/tilesense/pkg/terrain_grid"
	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
)

var tierOrder = []tp.MatchTier{tp.TierExact, tp.TierSimilar, tp.TierTerrainDefault, tp.TierNone}

func printLearnReport(w io.Writer, store *tp.PatternStore, r tg.LearnReport) {
	fmt.Fprintf(w, "tileset %s\n", store.TilesetID())
	fmt.Fprintf(w, "├── maps      %d\n", r.Maps)
	fmt.Fprintf(w, "├── cells     %d (learned %d, skipped %d, rejected %d)\n", r.Cells, r.Learned, r.Skipped, r.Rejected)
	fmt.Fprintf(w, "└── patterns  %d\n", store.Len())
}

func printMatch(w io.Writer, r tp.MatchResult) {
	fmt.Fprintf(w, "tile %d (%s)\n", r.Tile, r.Tier)
	switch r.Tier {
	case tp.TierExact:
		fmt.Fprintf(w, "└── %s\n", r.Signature)
	case tp.TierSimilar:
		fmt.Fprintf(w, "└── %s (%d/%d neighbors agree)\n", r.Signature, r.Similarity, tp.ContextSize)
	}
}

func printAutotileReport(w io.Writer, name string, tiles *tg.Grid, r tg.AutotileReport) {
	fmt.Fprintf(w, "map %s (%dx%d)\n", name, tiles.Width, tiles.Height)
	for i, tier := range tierOrder {
		prefix := "├──"
		if i == len(tierOrder)-1 {
			prefix = "└──"
		}
		fmt.Fprintf(w, "%s %-16s %d\n", prefix, tier, r.ByTier[tier])
	}
	for _, p := range r.Uninformed {
		fmt.Fprintf(w, "    ↳ no tile at (%d,%d)\n", p.X, p.Y)
	}
}

func printStats(w io.Writer, tileset string, r tp.StatsReport) {
	fmt.Fprintf(w, "tileset %s (index %s)\n", tileset, r.IndexState)
	fmt.Fprintf(w, "├── patterns         %d\n", r.TotalPatterns)
	fmt.Fprintf(w, "├── terrains         %d\n", r.TerrainsCovered)
	fmt.Fprintf(w, "├── unique tiles     %d\n", r.UniqueTiles)
	fmt.Fprintf(w, "├── tiles/pattern    %.2f\n", r.AverageTilesPerPattern)
	fmt.Fprintf(w, "└── quality          high %d, medium %d, low %d\n",
		r.Distribution.High, r.Distribution.Medium, r.Distribution.Low)
}

func printValidation(w io.Writer, r tp.ValidationReport) {
	if len(r.Issues) == 0 && len(r.Warnings) == 0 {
		fmt.Fprintln(w, "ok")
		return
	}
	printFindings(w, "issues", r.Issues)
	printFindings(w, "warnings", r.Warnings)
}

func printFindings(w io.Writer, title string, findings []tp.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "[%s %d]\n", title, len(findings))
	for i, f := range findings {
		prefix := "├──"
		if i == len(findings)-1 {
			prefix = "└──"
		}
		subject := f.Signature
		if subject == "" {
			subject = fmt.Sprintf("terrain %d", f.Terrain)
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", prefix, strings.ToUpper(string(f.Kind)), subject, f.Message)
	}
}
