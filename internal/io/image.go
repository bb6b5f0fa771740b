package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"github.com/cockroachdb/errors"
	"golang.org/x/image/draw"
)

// CoverOptions controls how cover art is prepared before being embedded
// in ID3 tags.
type CoverOptions struct {
	Resize       bool
	MaxSize      int // maximum width and height in pixels
	ConvertToJPG bool
}

// ImageService provides image processing operations for cover art.
//
// Example usage:
//
//	svc := NewImageService()
//	cover, err := svc.PrepareCover(ctx, imageData, CoverOptions{
//	    Resize:       true,
//	    MaxSize:      1000,
//	    ConvertToJPG: true,
//	})
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover applies opts to data. With neither resizing nor conversion
// requested, data is returned unchanged.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, opts CoverOptions) ([]byte, error) {
	switch {
	case opts.Resize && opts.MaxSize > 0:
		return s.ResizeImage(ctx, data, opts.MaxSize, opts.MaxSize)
	case opts.ConvertToJPG:
		return s.ConvertToJPEG(ctx, data)
	default:
		return data, nil
	}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. Images already within bounds keep their size
// but are still re-encoded. The result is always JPEG.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x666
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG re-encodes an image (JPEG or PNG) as JPEG at 90% quality.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}
	return buf.Bytes(), nil
}
