package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"
)

// Tesseract runs the tesseract CLI, feeding the region as PNG on stdin.
type Tesseract struct {
	Path string
	// PageSegmentationMode is passed as --psm; 6 treats the region as one block of text.
	PageSegmentationMode int
}

func NewTesseract(path string, psm int) *Tesseract {
	if path == "" {
		path = "tesseract"
	}
	if psm <= 0 {
		psm = 6
	}
	return &Tesseract{Path: path, PageSegmentationMode: psm}
}

func (t *Tesseract) Recognize(ctx context.Context, region image.Image) (string, error) {
	data, err := encodePNG(region)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Path, "stdin", "stdout", "--psm", strconv.Itoa(t.PageSegmentationMode))
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
