package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/iconcam/internal/export"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/session"
	"github.com/san-kum/iconcam/internal/viz"
	"github.com/spf13/cobra"
)

func newIconsCmd() *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "icons",
		Short: "show the icon table and how many levels map to each icon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}
			assets, err := session.AssetsFunc(cfg)(cmd.Context())
			if err != nil {
				return err
			}
			table := assets.Table

			fmt.Printf("levels: %d  distinct icons: %d\n\n", table.Len(), len(table.Distinct()))
			printHistogram(table)

			levels := make([]float64, table.Len())
			index := map[string]int{}
			for i, id := range table.Distinct() {
				index[id] = i
			}
			for k, id := range table.IDs() {
				levels[k] = float64(index[id])
			}
			if len(levels) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(levels,
					asciigraph.Height(8),
					asciigraph.Width(60),
					asciigraph.Caption("icon index by level")))
			}

			if exportDir != "" {
				if err := exportSprites(cmd.Context(), exportDir, assets); err != nil {
					return err
				}
				fmt.Printf("\nwrote %d sprites under %s\n", len(table.Distinct()), filepath.Join(exportDir, "solid"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportDir, "export", "", "write every sprite to <dir>/solid/<id>.png")
	return cmd
}

func printHistogram(table *icons.Table) {
	counts := table.Counts()
	ids := table.Distinct()
	sort.SliceStable(ids, func(i, j int) bool { return counts[ids[i]] > counts[ids[j]] })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ICON\tLEVELS\tSHARE")
	for _, id := range ids {
		share := float64(counts[id]) / float64(table.Len())
		fmt.Fprintf(w, "%s\t%d\t%s\n", id, counts[id], viz.Meter(share, 20))
	}
	w.Flush()
}

func exportSprites(ctx context.Context, dir string, assets *icons.AssetSet) error {
	if err := os.MkdirAll(filepath.Join(dir, "solid"), 0755); err != nil {
		return err
	}
	for _, id := range assets.Table.Distinct() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := export.SavePNG(icons.SpritePath(dir, id), assets.Image(id)); err != nil {
			return err
		}
	}
	return nil
}
