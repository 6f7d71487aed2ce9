package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"masjidku_portal/internals/configs"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessPhoto_ResizesAndEncodesWebP(t *testing.T) {
	photo, err := ProcessPhoto(pngBytes(t, 400, 200), PhotoOptions{MaxWidth: 100, Quality: 75})
	require.NoError(t, err)
	assert.Equal(t, 100, photo.Width)
	assert.Equal(t, 50, photo.Height)

	cfg, err := webp.DecodeConfig(bytes.NewReader(photo.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
}

func TestProcessPhoto_KeepsSmallImages(t *testing.T) {
	photo, err := ProcessPhoto(pngBytes(t, 80, 60), PhotoOptions{MaxWidth: 1600})
	require.NoError(t, err)
	assert.Equal(t, 80, photo.Width)
	assert.Equal(t, 60, photo.Height)
}

func TestProcessPhoto_RejectsNonImage(t *testing.T) {
	_, err := ProcessPhoto([]byte("%PDF-1.4 not an image"), PhotoOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ProcessPhoto(nil, PhotoOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("/galleries/", "webp", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(key, "galleries/2025/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage("https://cdn.example.com/")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a/b.webp", strings.NewReader("xyz"), 3, "image/webp"))
	data, ct, ok := s.Object("a/b.webp")
	require.True(t, ok)
	assert.Equal(t, "xyz", string(data))
	assert.Equal(t, "image/webp", ct)
	assert.Equal(t, "https://cdn.example.com/a/b.webp", s.PublicURL("a/b.webp"))

	require.NoError(t, s.Delete(ctx, "a/b.webp"))
	assert.Equal(t, 0, s.Len())
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), configs.StorageConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)

	_, err = New(context.Background(), configs.StorageConfig{Driver: "oss"}, nil)
	assert.Error(t, err, "oss requires endpoint and credentials")
}
