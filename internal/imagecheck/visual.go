package imagecheck

import (
	"image"
	"image/color"
	"math"
)

const (
	// cornerFraction sizes the corner windows relative to min(width, height).
	cornerFraction = 0.15
	// brightnessDelta is the corner-vs-global mean luma gap that counts as an
	// anomaly.
	brightnessDelta = 30.0
	// edgeThreshold is the Sobel gradient magnitude above which a pixel is an
	// edge.
	edgeThreshold = 50.0

	dilationKernel     = 5
	dilationIterations = 2

	// Watermark region bounds: share of total image area and height/width
	// aspect ratio.
	regionMinShare  = 0.05
	regionMaxShare  = 0.20
	regionMinAspect = 0.2
	regionMaxAspect = 5.0
)

// analyzeVisual looks for watermark-like structure: brightness anomalies in
// the four corners, and edge-contour regions whose size and aspect ratio fit
// an overlaid label.
func analyzeVisual(img image.Image) VisualAnalysis {
	out := VisualAnalysis{
		WatermarkRegions: []WatermarkRegion{},
		CornerAnalysis:   map[string]CornerResult{},
	}

	gray := toGrayscale(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return out
	}
	totalArea := float64(width * height)
	globalMean := meanLuma(gray, bounds)

	cornerSize := int(float64(min(width, height)) * cornerFraction)
	if cornerSize > 0 {
		corners := []struct {
			name string
			rect image.Rectangle
		}{
			{"top_left", image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+cornerSize, bounds.Min.Y+cornerSize)},
			{"top_right", image.Rect(bounds.Max.X-cornerSize, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+cornerSize)},
			{"bottom_left", image.Rect(bounds.Min.X, bounds.Max.Y-cornerSize, bounds.Min.X+cornerSize, bounds.Max.Y)},
			{"bottom_right", image.Rect(bounds.Max.X-cornerSize, bounds.Max.Y-cornerSize, bounds.Max.X, bounds.Max.Y)},
		}
		for _, c := range corners {
			diff := math.Abs(meanLuma(gray, c.rect) - globalMean)
			if diff > brightnessDelta {
				out.CornerAnalysis[c.name] = CornerResult{HasAnomaly: true, BrightnessDiff: diff}
				out.BrightnessAnomalies = true
			}
		}
	}

	edges := sobelEdges(gray)
	dilated := dilate(edges, dilationKernel, dilationIterations)
	for _, rect := range findContours(dilated) {
		w, h := rect.Dx(), rect.Dy()
		if w == 0 {
			continue
		}
		share := float64(w*h) / totalArea
		aspect := float64(h) / float64(w)
		if share < regionMinShare || share > regionMaxShare {
			continue
		}
		if aspect < regionMinAspect || aspect > regionMaxAspect {
			continue
		}
		out.HasWatermark = true
		out.WatermarkRegions = append(out.WatermarkRegions, WatermarkRegion{
			X:               rect.Min.X - bounds.Min.X,
			Y:               rect.Min.Y - bounds.Min.Y,
			Width:           w,
			Height:          h,
			CoveragePercent: share * 100,
		})
	}

	return out
}

func toGrayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

func meanLuma(gray *image.Gray, rect image.Rectangle) float64 {
	rect = rect.Intersect(gray.Bounds())
	if rect.Empty() {
		return 0
	}
	var sum float64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
		}
	}
	return sum / float64(rect.Dx()*rect.Dy())
}

func sobelEdges(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	gx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * gx[ky+1][kx+1]
					sumY += pixel * gy[ky+1][kx+1]
				}
			}
			if math.Sqrt(sumX*sumX+sumY*sumY) > edgeThreshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := img
	half := kernelSize / 2

	for iter := 0; iter < iterations; iter++ {
		next := image.NewGray(bounds)
		for y := bounds.Min.Y + half; y < bounds.Max.Y-half; y++ {
			for x := bounds.Min.X + half; x < bounds.Max.X-half; x++ {
				var maxVal uint8
				for ky := -half; ky <= half; ky++ {
					for kx := -half; kx <= half; kx++ {
						if v := result.GrayAt(x+kx, y+ky).Y; v > maxVal {
							maxVal = v
						}
					}
				}
				next.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = next
	}
	return result
}

// findContours returns the bounding rectangle of every connected white
// component, scanning top-to-bottom left-to-right so the output order is
// stable.
func findContours(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([][]bool, bounds.Dy())
	for i := range visited {
		visited[i] = make([]bool, bounds.Dx())
	}

	var contours []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[y-bounds.Min.Y][x-bounds.Min.X] {
				contours = append(contours, floodFill(img, visited, x, y))
			}
		}
	}
	return contours
}

func floodFill(img *image.Gray, visited [][]bool, startX, startY int) image.Rectangle {
	bounds := img.Bounds()
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.In(bounds) {
			continue
		}
		if visited[p.Y-bounds.Min.Y][p.X-bounds.Min.X] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[p.Y-bounds.Min.Y][p.X-bounds.Min.X] = true

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
