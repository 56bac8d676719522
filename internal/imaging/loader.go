package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// cached is a decoded image and the format name reported by the decoder.
type cached struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded source images keyed by path, so a sequence of
// morphology calls on the same file decodes it once.
//
// Entries stay until Evict or Clear. Different spellings of the same path
// are separate entries.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cached
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]cached)}
}

// Load returns the decoded image at path, reading it on first use.
// PNG, JPEG and GIF are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) entry(path string) (cached, error) {
	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cached{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cached{}, fmt.Errorf("failed to decode image: %w", err)
	}
	e = cached{img: img, format: format}

	c.mu.Lock()
	c.images[path] = e
	c.mu.Unlock()
	return e, nil
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cached)
	c.mu.Unlock()
}

// Evict drops the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a source image as the morphology tools will see it.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg" or "gif".
	Format string `json:"format"`

	// Grayscale is true for single-channel sources; Bands is 1 for those
	// and 3 otherwise, matching ToGrid with ColorAuto.
	Grayscale bool `json:"grayscale"`
	Bands     int  `json:"bands"`

	// HasAlpha is true when the color model carries transparency; fully
	// transparent pixels load as absent grid positions.
	HasAlpha bool `json:"has_alpha"`

	// SixteenBit is true for 16-bit-per-channel sources. Values are reduced
	// to 8 bits on load.
	SixteenBit bool `json:"sixteen_bit"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.entry(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ImageInfo{
		Width:         e.img.Bounds().Dx(),
		Height:        e.img.Bounds().Dy(),
		Format:        e.format,
		Bands:         3,
		FileSizeBytes: stat.Size(),
	}
	switch e.img.(type) {
	case *image.Gray:
		info.Grayscale = true
	case *image.Gray16:
		info.Grayscale, info.SixteenBit = true, true
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha, info.SixteenBit = true, true
	}
	if info.Grayscale {
		info.Bands = 1
	}
	return info, nil
}

// DimensionsResult is the pixel size of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path through cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}
