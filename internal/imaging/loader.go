package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"
	"os"
	"sync"
)

// ImageCache provides thread-safe caching of decoded images so that a
// preview followed by a generation of the same file only hits the disk once.
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). For long-running servers handling many images, periodic cleanup
// prevents unbounded memory growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache, ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Images are cached by the exact path string; relative and absolute paths to
// the same file occupy separate entries. Supported formats are PNG, JPEG,
// and GIF. Returns an error if the file cannot be opened or decoded; in
// pipeline terms an input error, reported before any field buffer is
// allocated.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a source image from the lithophane pipeline's point of
// view: its dimensions plus its measured luminance range, which tells a
// caller up front whether the image is degenerate (flat) and will produce a
// constant-height relief.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// MinLuminance and MaxLuminance are the darkest and brightest BT.601
	// luma values found in the image, in [0,255].
	MinLuminance int `json:"min_luminance"`
	MaxLuminance int `json:"max_luminance"`

	// Flat reports whether MinLuminance == MaxLuminance. A flat image still
	// generates, but the relief degenerates to a uniform slab.
	Flat bool `json:"flat"`

	// FileSizeBytes is the size of the image file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image (through the cache) and returns its
// dimensions and luminance statistics.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	minLum, maxLum := 255, 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Round, don't truncate: pure white produces 254.999... here
			// and must report as 255 or Flat misfires on near-degenerate
			// images.
			lum := int(math.Round((0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0))
			if lum < minLum {
				minLum = lum
			}
			if lum > maxLum {
				maxLum = lum
			}
		}
	}
	if maxLum < minLum {
		// Empty bounds; nothing was sampled.
		minLum, maxLum = 0, 0
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		MinLuminance:  minLum,
		MaxLuminance:  maxLum,
		Flat:          minLum == maxLum,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains just the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without the luminance
// scan that LoadImageInfo performs.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
