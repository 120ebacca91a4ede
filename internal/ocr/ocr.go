// Package ocr holds the text recognition backends used by bill ingestion.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/ingestion"
)

const (
	ProviderTesseract = "tesseract"
	ProviderAzure     = "azure"
)

// New builds the recognizer selected by cfg.Provider.
func New(cfg internal.RecognizerConfig) (ingestion.Recognizer, error) {
	switch cfg.Provider {
	case "", ProviderTesseract:
		return NewTesseract(cfg.TesseractPath, cfg.PageSegmentationMode), nil
	case ProviderAzure:
		return NewAzure(cfg.AzureEndpoint, cfg.AzureAPIKey)
	}
	return nil, fmt.Errorf("unknown recognizer provider %q", cfg.Provider)
}

func encodePNG(region image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	return buf.Bytes(), nil
}
