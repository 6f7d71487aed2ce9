package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = errors.New("format gambar tidak didukung (pakai jpg/png/webp)")

type PhotoOptions struct {
	MaxWidth int
	Quality  float32
}

type Photo struct {
	Data   []byte
	Width  int
	Height int
}

// ProcessPhoto: decode (EXIF orientation ikut), perkecil ke MaxWidth, encode webp.
func ProcessPhoto(raw []byte, opt PhotoOptions) (Photo, error) {
	if len(raw) == 0 {
		return Photo{}, ErrUnsupportedImage
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Photo{}, ErrUnsupportedImage
		}
		return Photo{}, fmt.Errorf("decode: %w", err)
	}

	if opt.MaxWidth > 0 && img.Bounds().Dx() > opt.MaxWidth {
		img = imaging.Resize(img, opt.MaxWidth, 0, imaging.Lanczos)
	}
	q := opt.Quality
	if q <= 0 || q > 100 {
		q = 80
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: q}); err != nil {
		return Photo{}, fmt.Errorf("encode webp: %w", err)
	}
	b := img.Bounds()
	return Photo{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
