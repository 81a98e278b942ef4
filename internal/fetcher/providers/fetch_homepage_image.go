package providers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"synthcheck/internal/data"
	"synthcheck/internal/data/models"
	"synthcheck/internal/fetcher"
	"synthcheck/internal/imagecheck"
)

// maxImageBytes caps how much of an image file is downloaded.
const maxImageBytes = 20 << 20

type homepageImageFetcher struct{}

func (h *homepageImageFetcher) Key() data.DependencyKey {
	return data.DepHomepageImage
}

func (h *homepageImageFetcher) ScopeURL(platform data.Platform) string {
	return platform.HomepageURL
}

// Fetch downloads the platform homepage, picks the first referenced image,
// and decodes it together with its embedded metadata. A homepage without
// images is not an error: the result has Found == 0 and a nil Image.
func (h *homepageImageFetcher) Fetch(ctx context.Context, platform data.Platform, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if platform.HomepageURL == "" {
		return nil, fmt.Errorf("platform %s has no homepage URL", platform.Label())
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	resp, err := f.Client().Get(ctx, platform.HomepageURL)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(platform.HomepageURL)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	imageURLs, err := fetcher.ImageURLs(resp.Body, base)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("parse homepage %s: %w", platform.HomepageURL, err)
	}

	result := &models.HomepageImage{
		PageURL: platform.HomepageURL,
		Found:   len(imageURLs),
	}
	if len(imageURLs) == 0 {
		return result, nil
	}
	result.ImageURL = imageURLs[0]

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}
	imgResp, err := f.Client().Get(ctx, result.ImageURL)
	if imgResp != nil {
		f.Budget().UpdateFromResponse(imgResp)
	}
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(io.LimitReader(imgResp.Body, maxImageBytes))
	imgResp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("download image %s: %w", result.ImageURL, err)
	}

	result.Raw = raw
	result.Metadata = imagecheck.ParseMetadata(raw)

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", result.ImageURL, err)
	}
	result.Image = img

	return result, nil
}

func init() {
	fetcher.RegisterDataFetcher(&homepageImageFetcher{})
}
