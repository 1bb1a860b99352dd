// Package capture negotiates the frame source that feeds the mosaic.
//
// Request never treats an unavailable source as fatal: it returns an
// Unavailable Info (aspect ratio 1) next to the reason, so callers can fall
// back to the placeholder rendering path.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/san-kum/iconcam/internal/logx"
)

// FallbackAspectRatio is used whenever no source is available.
const FallbackAspectRatio = 1.0

var (
	ErrNoCamera      = errors.New("capture: no camera available")
	ErrDisabled      = errors.New("capture: disabled")
	ErrUnknownSource = errors.New("capture: unknown source")
	ErrBadFrame      = errors.New("capture: bad frame")
)

// Source is a drawable frame provider. Frame returns the most recent frame,
// or nil when none has arrived yet.
type Source interface {
	Frame() image.Image
	Close() error
}

// Info is the outcome of capture negotiation.
type Info struct {
	Available   bool
	AspectRatio float64
	Source      Source
}

// Unavailable is the Info used when capture could not be started.
func Unavailable() Info {
	return Info{AspectRatio: FallbackAspectRatio}
}

// Frame returns the current frame when capture is available.
func (i Info) Frame() image.Image {
	if !i.Available || i.Source == nil {
		return nil
	}
	return i.Source.Frame()
}

// Close releases the source, if any.
func (i Info) Close() error {
	if i.Source == nil {
		return nil
	}
	return i.Source.Close()
}

func available(src Source, w, h int) Info {
	ratio := FallbackAspectRatio
	if w > 0 && h > 0 {
		ratio = float64(w) / float64(h)
	}
	return Info{Available: true, AspectRatio: ratio, Source: src}
}

// Request starts the named source: "camera", "gradient",
// "none" or "image:<path>". On failure the returned Info is Unavailable and
// err says why.
func Request(ctx context.Context, name string, timeout time.Duration) (Info, error) {
	name = strings.TrimSpace(name)
	var (
		info Info
		err  error
	)
	switch {
	case name == "" || name == "none":
		err = ErrDisabled
	case name == "camera":
		info, err = openCamera(ctx, timeout)
	case name == "gradient":
		info = available(NewGradient(160, 120), 160, 120)
	case strings.HasPrefix(name, "image:"):
		var still *Still
		still, err = OpenStill(strings.TrimPrefix(name, "image:"))
		if err == nil {
			b := still.Frame().Bounds()
			info = available(still, b.Dx(), b.Dy())
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	if err != nil {
		logx.Logger().Warn("capture unavailable, using placeholder", "source", name, "err", err)
		return Unavailable(), err
	}
	logx.Logger().Info("capture ready", "source", name, "aspect", info.AspectRatio)
	return info, nil
}
