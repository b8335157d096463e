package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBlurPlaceholder_Process(t *testing.T) {
	tests := []struct {
		name          string
		imageData     []byte
		expectedError string
	}{
		{
			name:      "Success - Valid JPEG",
			imageData: createTestJPEG(320, 180, color.RGBA{R: 255, G: 0, B: 0, A: 255}),
		},
		{
			name:      "Edge Case - Tiny Image",
			imageData: createTestJPEG(1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 255}),
		},
		{
			name:          "Error - Invalid Image Data",
			imageData:     []byte("not-an-image"),
			expectedError: "failed to decode image",
		},
		{
			name:          "Error - Empty Data",
			imageData:     []byte{},
			expectedError: "failed to decode image",
		},
		{
			name:          "Error - Corrupted JPEG",
			imageData:     []byte{0xFF, 0xD8, 0xFF, 0x00, 0x00},
			expectedError: "failed to decode image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBlurPlaceholder(zap.NewNop())
			result, err := p.Process(context.Background(), tt.imageData)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			img, _, err := image.Decode(bytes.NewReader(result))
			if err != nil {
				t.Fatalf("result is not a valid image: %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != placeholderWidth || bounds.Dy() != placeholderHeight {
				t.Errorf("expected %dx%d, got %dx%d",
					placeholderWidth, placeholderHeight, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

// createTestJPEG generates a simple JPEG image for testing
func createTestJPEG(width, height int, col color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, col)
		}
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		panic("failed to create test JPEG: " + err.Error())
	}
	return buf.Bytes()
}
