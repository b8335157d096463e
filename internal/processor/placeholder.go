package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG format support

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	defaultBlurRadius = 12.0
	// Portrait target matching the vertical feed; placeholders only need to
	// look right behind a spinner, not be pixel-perfect.
	placeholderWidth  = 540
	placeholderHeight = 960
	jpegQuality       = 70
)

// PlaceholderConfig holds configuration for placeholder generation.
type PlaceholderConfig struct {
	BlurRadius float64
	Width      int
	Height     int
}

// BlurPlaceholder turns poster stills into blurred portrait placeholders
// shown while the decoder warms up. Purely in-memory: bytes in, bytes out.
type BlurPlaceholder struct {
	logger *zap.Logger
	config PlaceholderConfig
}

// NewBlurPlaceholder creates a new blur-based placeholder processor.
func NewBlurPlaceholder(logger *zap.Logger) *BlurPlaceholder {
	return &BlurPlaceholder{
		logger: logger,
		config: PlaceholderConfig{
			BlurRadius: defaultBlurRadius,
			Width:      placeholderWidth,
			Height:     placeholderHeight,
		},
	}
}

// Process decodes the poster, fills the portrait frame and blurs it.
func (p *BlurPlaceholder) Process(ctx context.Context, imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	p.logger.Debug("Creating blurred placeholder",
		zap.Int("w", p.config.Width), zap.Int("h", p.config.Height))
	result := imaging.Fill(img, p.config.Width, p.config.Height, imaging.Center, imaging.Lanczos)
	result = imaging.Blur(result, p.config.BlurRadius)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, result, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	p.logger.Debug("Placeholder processed successfully", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
