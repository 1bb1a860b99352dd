// Package startup joins the two independent startup collaborators, capture
// negotiation and icon loading, before the first frame is scheduled.
package startup

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/logx"
	"golang.org/x/sync/errgroup"
)

var ErrNoAssets = errors.New("startup: asset loader returned no assets")

type CaptureFunc func(ctx context.Context) (capture.Info, error)

type AssetsFunc func(ctx context.Context) (*icons.AssetSet, error)

// CaptureOutcome is the settled result of capture negotiation. A failed
// negotiation still carries a usable Unavailable Info.
type CaptureOutcome struct {
	Info capture.Info
	Err  error
}

type AssetOutcome struct {
	Assets *icons.AssetSet
	Err    error
}

type Outcomes struct {
	Capture CaptureOutcome
	Assets  AssetOutcome
}

// SettleAll runs both collaborators concurrently and waits for both,
// whatever either returns. Neither failure cancels the other.
func SettleAll(ctx context.Context, captureFn CaptureFunc, assetsFn AssetsFunc) Outcomes {
	var out Outcomes
	var g errgroup.Group

	g.Go(func() error {
		info, err := captureFn(ctx)
		if err != nil {
			info = capture.Unavailable()
		}
		if !(info.AspectRatio > 0) {
			info.AspectRatio = capture.FallbackAspectRatio
		}
		out.Capture = CaptureOutcome{Info: info, Err: err}
		return nil
	})
	g.Go(func() error {
		assets, err := assetsFn(ctx)
		if err == nil && assets == nil {
			err = ErrNoAssets
		}
		out.Assets = AssetOutcome{Assets: assets, Err: err}
		return nil
	})
	g.Wait()

	return out
}

// Ready resolves the outcomes into what the pipeline needs. A capture
// failure is logged and replaced by the placeholder path; an asset failure
// is returned.
func (o Outcomes) Ready() (capture.Info, *icons.AssetSet, error) {
	if o.Capture.Err != nil {
		logx.Logger().Warn("capture unavailable, using placeholder", "err", o.Capture.Err)
	}
	if o.Assets.Err != nil {
		o.Capture.Info.Close()
		return capture.Info{}, nil, fmt.Errorf("load icons: %w", o.Assets.Err)
	}
	return o.Capture.Info, o.Assets.Assets, nil
}
