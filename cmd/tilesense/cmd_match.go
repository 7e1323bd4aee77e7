package main

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/jtomasevic/tilesense/pkg/tile_patterns"
	"github.com/spf13/cobra"
)

var (
	matchSnapshot string
	matchCenter   int
	matchContext  string
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pick the best tile for one cell",
		Long: `Queries a snapshot with a center terrain and its 8 neighbors, listed as
NW,N,NE,W,E,SW,S,SE. Prints the tile and the tier that resolved it.`,
		Example: `  tilesense match --snapshot tileset.json --center 1 --context 1,2,2,1,1,1,1,1`,
		Args:    cobra.NoArgs,
		RunE:    runMatch,
	}
	cmd.Flags().StringVarP(&matchSnapshot, "snapshot", "s", "", "snapshot file to query")
	cmd.Flags().IntVar(&matchCenter, "center", 0, "center terrain")
	cmd.Flags().StringVar(&matchContext, "context", "", "comma separated neighbor terrains")
	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	neighbors, err := parseContext(matchContext)
	if err != nil {
		return err
	}
	store, err := loadSnapshot(matchSnapshot)
	if err != nil {
		return err
	}

	printMatch(cmd.OutOrStdout(), store.Match(matchCenter, neighbors))
	return nil
}

// parseContext reads "a,b,c,..." into a context. The length is not checked here:
// a malformed context is still a valid query.
func parseContext(raw string) (tp.NeighborContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return tp.NeighborContext{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make(tp.NeighborContext, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid --context value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
