package ingestion

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"strings"
	"sync"

	// decoders for uploaded receipts
	_ "image/jpeg"
	_ "image/png"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/google/uuid"
)

// Rectangle 0 is the items column and rectangle 1 the amounts column.
const (
	itemsRegion   = 0
	amountsRegion = 1

	minRectangles = 2
)

// Rect is a caller-drawn region in image pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// ParseRectangles decodes the JSON rectangle array sent with an upload.
func ParseRectangles(raw string) ([]Rect, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.NewInvalidInputError("missing rectangles")
	}

	var rects []Rect
	if err := json.Unmarshal([]byte(raw), &rects); err != nil {
		return nil, errors.NewInvalidInputError("invalid rectangles JSON")
	}
	if len(rects) < minRectangles {
		return nil, errors.NewInvalidInputError("please draw 2 rectangles (items + amounts)")
	}
	for i, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("rectangle %d must have a positive width and height", i))
		}
	}
	return rects, nil
}

// SpoolUpload copies src into a temp file owned by the caller. The returned
// release func closes and removes the file; it is safe to call more than once.
func SpoolUpload(dir string, src io.Reader) (*os.File, func(), error) {
	f, err := os.CreateTemp(dir, "bill-"+uuid.NewString()+"-*")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp file: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = f.Close()
			_ = os.Remove(f.Name())
		})
	}

	if _, err := io.Copy(f, src); err != nil {
		release()
		return nil, func() {}, fmt.Errorf("spool upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		release()
		return nil, func() {}, fmt.Errorf("rewind upload: %w", err)
	}
	return f, release, nil
}

func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.NewDecodeError("uploaded image could not be decoded", err)
	}
	return img, nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// ExtractRegions crops one sub-image per rectangle, in rectangle order.
// Rectangles are clipped to the image; a rectangle entirely outside it
// yields an empty image.
func ExtractRegions(img image.Image, rects []Rect) ([]image.Image, error) {
	if len(rects) < minRectangles {
		return nil, errors.NewInvalidInputError("please draw 2 rectangles (items + amounts)")
	}

	regions := make([]image.Image, 0, len(rects))
	for _, r := range rects {
		bounds := r.Bounds().Intersect(img.Bounds())
		if si, ok := img.(subImager); ok {
			regions = append(regions, si.SubImage(bounds))
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		regions = append(regions, dst)
	}
	return regions, nil
}
