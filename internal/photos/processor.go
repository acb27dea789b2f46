package photos

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// processed holds a normalized photo ready to be written to disk.
type processed struct {
	data []byte
	ext  string
}

type processor struct {
	maxWidth    int
	jpegQuality int
}

func newProcessor(maxWidth, jpegQuality int) processor {
	if maxWidth <= 0 {
		maxWidth = 500
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = jpeg.DefaultQuality
	}
	return processor{maxWidth: maxWidth, jpegQuality: jpegQuality}
}

// process validates the upload bytes, scales the image down to the configured
// maximum width while keeping the aspect ratio, and re-encodes it in its
// original format.
func (p processor) process(data []byte) (processed, error) {
	mimeType, err := sniffMimeType(data)
	if err != nil {
		return processed{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return processed{}, fmt.Errorf("decode photo: %w", err)
	}

	img = p.scaleDown(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.jpegQuality})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return processed{}, fmt.Errorf("photo type %s is not supported, use %s", mimeType, allowedMimeDescription)
	}
	if err != nil {
		return processed{}, fmt.Errorf("encode photo: %w", err)
	}
	return processed{data: buf.Bytes(), ext: extByMimeType[mimeType]}, nil
}

func (p processor) scaleDown(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	if width <= p.maxWidth {
		return img
	}
	height := bounds.Dy() * p.maxWidth / width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, p.maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
