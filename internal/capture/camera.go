package capture

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/san-kum/iconcam/internal/logx"
	"github.com/svanichkin/gocam"
)

// Camera publishes the newest gocam frame converted to RGBA. The producer
// goroutine is the only writer; Frame may be called from the render loop at
// any time.
type Camera struct {
	latest atomic.Pointer[image.RGBA]
	cancel context.CancelFunc
	done   chan struct{}
}

// openCamera starts the stream and waits for the first frame, which fixes
// the native aspect ratio.
func openCamera(ctx context.Context, timeout time.Duration) (Info, error) {
	sctx, cancel := context.WithCancel(context.Background())
	src, err := gocam.StartStream(sctx)
	if err != nil {
		cancel()
		return Unavailable(), fmt.Errorf("%w: %v", ErrNoCamera, err)
	}

	cam := &Camera{cancel: cancel, done: make(chan struct{})}
	first := make(chan *image.RGBA, 1)
	go cam.pump(sctx, src, first)

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case img, ok := <-first:
		if !ok {
			cam.Close()
			return Unavailable(), fmt.Errorf("%w: stream closed before first frame", ErrNoCamera)
		}
		b := img.Bounds()
		return available(cam, b.Dx(), b.Dy()), nil
	case <-timer.C:
		cam.Close()
		return Unavailable(), fmt.Errorf("%w: no frame within %s", ErrNoCamera, timeout)
	case <-ctx.Done():
		cam.Close()
		return Unavailable(), ctx.Err()
	}
}

func (c *Camera) pump(ctx context.Context, src <-chan gocam.Frame, first chan<- *image.RGBA) {
	defer close(c.done)
	defer close(first)
	sent := false
	for {
		var f gocam.Frame
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-src:
			if !ok {
				return
			}
			f = frame
		}
		img, err := rgb24ToRGBA(f.Width, f.Height, f.Data)
		if err != nil {
			logx.Logger().Debug("dropping camera frame", "err", err)
			continue
		}
		c.latest.Store(img)
		if !sent {
			first <- img
			sent = true
		}
	}
}

func (c *Camera) Frame() image.Image {
	if img := c.latest.Load(); img != nil {
		return img
	}
	return nil
}

func (c *Camera) Close() error {
	c.cancel()
	<-c.done
	return nil
}

// rgb24ToRGBA converts a packed RGB24 buffer to an opaque RGBA image.
func rgb24ToRGBA(w, h int, data []byte) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(data) < w*h*3 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrBadFrame, w, h, len(data))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < w*h*3; i, j = i+3, j+4 {
		img.Pix[j] = data[i]
		img.Pix[j+1] = data[i+1]
		img.Pix[j+2] = data[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}
