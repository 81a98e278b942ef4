package providers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"synthcheck/internal/data"
	"synthcheck/internal/data/models"
	"synthcheck/internal/fetcher"
)

type imageOCRFetcher struct{}

func (o *imageOCRFetcher) Key() data.DependencyKey {
	return data.DepImageOCR
}

func (o *imageOCRFetcher) ScopeURL(platform data.Platform) string {
	return platform.HomepageURL
}

// Fetch runs text recognition over the homepage image. OCR is best effort:
// a missing tesseract binary, a homepage without images, or a failed
// recognition all yield empty text rather than an error.
func (o *imageOCRFetcher) Fetch(ctx context.Context, platform data.Platform, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	empty := &models.OCRText{Lines: []string{}}
	if f.OCRDisabled() {
		return empty, nil
	}

	tesseract, err := exec.LookPath("tesseract")
	if err != nil {
		return empty, nil
	}

	val, err := f.Fetch(ctx, platform, data.DepHomepageImage, nil)
	if err != nil {
		return nil, err
	}
	img, ok := val.(*models.HomepageImage)
	if !ok {
		return nil, fmt.Errorf("unexpected type %T for %s", val, data.DepHomepageImage)
	}
	if len(img.Raw) == 0 {
		return empty, nil
	}

	lines, err := runTesseract(ctx, tesseract, img.Raw)
	if err != nil {
		return empty, nil
	}
	return &models.OCRText{Lines: lines}, nil
}

// runTesseract feeds the raw image to the tesseract CLI via a temp file and
// splits its stdout into trimmed non-empty lines.
func runTesseract(ctx context.Context, binary string, raw []byte) ([]string, error) {
	tmp, err := os.CreateTemp("", "synthcheck-ocr-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	// "stdout" as the output base makes tesseract print recognized text.
	cmd := exec.CommandContext(ctx, binary, filepath.Clean(tmp.Name()), "stdout")
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

func init() {
	fetcher.RegisterDataFetcher(&imageOCRFetcher{})
}
