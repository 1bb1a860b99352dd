package icons

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/iconcam/internal/logx"
	"golang.org/x/sync/errgroup"
)

// ErrLoadTimeout is returned when a single image attempt exceeds its budget.
var ErrLoadTimeout = errors.New("icons: image load timed out")

// AssetSet pairs a table with one decoded image per distinct identifier.
type AssetSet struct {
	Table  *Table
	images map[string]image.Image
}

// NewAssetSet checks that every identifier in table has an image.
func NewAssetSet(table *Table, images map[string]image.Image) (*AssetSet, error) {
	for _, id := range table.Distinct() {
		if images[id] == nil {
			return nil, &LoadError{ID: id, Err: os.ErrNotExist}
		}
	}
	return &AssetSet{Table: table, images: images}, nil
}

// Image returns the decoded sprite for id, or nil.
func (a *AssetSet) Image(id string) image.Image {
	return a.images[id]
}

// LoadError reports an icon that could not be decoded after all attempts.
type LoadError struct {
	ID       string
	Path     string
	Attempts int
	Err      error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("icons: %s: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("icons: %s (%s) failed after %d attempt(s): %v", e.ID, e.Path, e.Attempts, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Opener decodes the image for one identifier.
type Opener func(ctx context.Context, id string) (image.Image, error)

type LoadOptions struct {
	// Dir holds the solid/<id>.png sprites.
	Dir         string
	Timeout     time.Duration
	Retries     int
	Concurrency int
	// Open overrides the file opener; used by tests.
	Open Opener
}

// SpriteHref is the slash-separated sprite location relative to the icon
// directory.
func SpriteHref(id string) string {
	return "solid/" + id + ".png"
}

// SpritePath is the conventional location of the sprite for id.
func SpritePath(dir, id string) string {
	return filepath.Join(dir, filepath.FromSlash(SpriteHref(id)))
}

// FileOpener decodes <dir>/solid/<id>.png.
func FileOpener(dir string) Opener {
	return func(ctx context.Context, id string) (image.Image, error) {
		f, err := os.Open(SpritePath(dir, id))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		return img, err
	}
}

// Load decodes one image per distinct identifier concurrently. It resolves
// only when every image loaded; an image that keeps failing after
// opts.Retries extra attempts aborts the whole load with a *LoadError.
func Load(ctx context.Context, table *Table, opts LoadOptions) (*AssetSet, error) {
	open := opts.Open
	if open == nil {
		open = FileOpener(opts.Dir)
	}
	ids := table.Distinct()
	decoded := make([]image.Image, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			img, err := loadOne(gctx, open, id, opts)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make(map[string]image.Image, len(ids))
	for i, id := range ids {
		images[id] = decoded[i]
	}
	logx.Logger().Info("icons loaded", "levels", table.Len(), "distinct", len(ids))
	return &AssetSet{Table: table, images: images}, nil
}

func loadOne(ctx context.Context, open Opener, id string, opts LoadOptions) (image.Image, error) {
	var (
		lastErr error
		made    int
	)
	for made < opts.Retries+1 {
		made++
		img, err := openWithTimeout(ctx, open, id, opts.Timeout)
		if err == nil {
			return img, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		logx.Logger().Warn("icon load failed", "id", id, "attempt", made, "err", err)
	}
	return nil, &LoadError{ID: id, Path: SpritePath(opts.Dir, id), Attempts: made, Err: lastErr}
}

type openResult struct {
	img image.Image
	err error
}

func openWithTimeout(ctx context.Context, open Opener, id string, timeout time.Duration) (image.Image, error) {
	if timeout <= 0 {
		return open(ctx, id)
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan openResult, 1)
	go func() {
		img, err := open(actx, id)
		done <- openResult{img, err}
	}()

	select {
	case r := <-done:
		if r.err == nil && r.img == nil {
			return nil, fmt.Errorf("icons: %s decoded to nil image", id)
		}
		return r.img, r.err
	case <-actx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrLoadTimeout
	}
}
