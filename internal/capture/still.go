package capture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Still serves one decoded image as every frame.
type Still struct {
	img image.Image
}

// OpenStill decodes a png, jpeg, gif, bmp or webp file.
func OpenStill(path string) (*Still, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("capture: decode %s: %w", path, err)
	}
	return NewStill(img), nil
}

func NewStill(img image.Image) *Still { return &Still{img: img} }

func (s *Still) Frame() image.Image { return s.img }
func (s *Still) Close() error       { return nil }
