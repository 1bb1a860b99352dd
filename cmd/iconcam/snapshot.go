package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/iconcam/internal/config"
	"github.com/san-kum/iconcam/internal/export"
	"github.com/san-kum/iconcam/internal/session"
	"github.com/san-kum/iconcam/internal/viz"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	var (
		frames  int
		width   int
		height  int
		scale   float64
		outPNG  string
		outSVG  string
		svgBase string
		report  string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headless and write the mosaic to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "window")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			info, assets, err := session.Settle(ctx, cfg)
			if err != nil {
				return err
			}
			t := viz.GetTheme(cfg.Render.Theme)
			sess, err := session.New(cfg, info, assets, session.Options{Scale: scale, Background: t.Fill()})
			if err != nil {
				info.Close()
				return err
			}
			defer sess.Close()
			sess.Resize(width, height)

			rep := &export.Report{Source: cfg.Capture.Source, DeadBand: cfg.Render.DeadBand}
			if report != "" {
				sess.Pipeline().AddObserver(rep)
			}

			start := time.Now()
			if err := sess.RunFrames(ctx, frames); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			elapsed := time.Since(start)

			if err := export.SavePNG(outPNG, sess.Canvas().Image()); err != nil {
				return err
			}
			if outSVG != "" {
				if err := writeSVG(outSVG, sess, string(t.Background), svgAssetBase(svgBase, cfg)); err != nil {
					return err
				}
			}

			g := sess.Pipeline().Geometry()
			vals := sess.Metrics().Values()
			if report != "" {
				rep.Capture = sess.Capture().Available
				rep.Levels = sess.Pipeline().Levels()
				rep.CellSize, rep.Pitch, rep.Cols, rep.Rows = g.CellSize, g.Pitch, g.Cols, g.Rows
				rep.Metrics = vals
				if err := export.SaveReport(report, rep); err != nil {
					return err
				}
			}
			fmt.Printf("rendered %d frames in %v\n", frames, elapsed.Round(time.Millisecond))
			fmt.Printf("grid: %dx%d cells of %d (pitch %d)\n", g.Cols, g.Rows, g.CellSize, g.Pitch)
			fmt.Printf("capture: %v\n", sess.Capture().Available)
			fmt.Printf("redraw ratio: %.3f  dead-band ratio: %.3f\n", vals["redraw_ratio"], vals["deadband_ratio"])
			fmt.Printf("wrote %s\n", outPNG)
			for _, path := range []string{outSVG, report} {
				if path != "" {
					fmt.Printf("wrote %s\n", path)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 1, "number of frames to render")
	cmd.Flags().IntVar(&width, "width", 1280, "viewport width")
	cmd.Flags().IntVar(&height, "height", 720, "viewport height")
	cmd.Flags().Float64Var(&scale, "scale", 1, "device pixel density")
	cmd.Flags().StringVarP(&outPNG, "out", "o", "mosaic.png", "png output path")
	cmd.Flags().StringVar(&outSVG, "svg", "", "also write an svg referencing the icon files")
	cmd.Flags().StringVar(&report, "report", "", "write per-frame statistics as json")
	cmd.Flags().StringVar(&svgBase, "svg-assets", "", "icon directory as seen from the svg (default: icons.dir)")
	return cmd
}

// svgAssetBase is the sprite directory written into svg hrefs: the
// --svg-assets flag when given, otherwise the configured icon directory.
func svgAssetBase(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Icons.Dir
}

func writeSVG(path string, sess *session.Session, background, base string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	grid := sess.Pipeline().Grid()
	cell := sess.Pipeline().CellSize()
	if err := export.MosaicSVG(f, grid.Icons(), cell, background, base); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
