package imaging

import (
	"image"
	"image/color"
)

// OtsuThreshold computes the global threshold maximizing between-class
// variance of the grayscale histogram.
func OtsuThreshold(src *image.Gray) int {
	var hist [256]int
	bounds := src.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 128
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[src.GrayAt(x, y).Y]++
		}
	}

	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var sumBack, weightBack float64
	bestThreshold, bestVariance := 0, 0.0
	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sumAll - sumBack) / weightFore
		variance := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = t
		}
	}
	return bestThreshold
}

// Binarize maps pixels above threshold to white and the rest to black.
func Binarize(src *image.Gray, threshold int) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if int(src.GrayAt(x, y).Y) > threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// AdaptiveThreshold binarizes against the local mean of a blockSize window
// minus constant c. Suits body text where illumination varies across the
// page.
func AdaptiveThreshold(src *image.Gray, blockSize, c int) *image.Gray {
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	half := blockSize / 2

	bounds := src.Bounds()
	integral := buildIntegral(src)
	out := image.NewGray(bounds)

	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := maxInt(0, x-half), maxInt(0, y-half)
			x1, y1 := minInt(w-1, x+half), minInt(h-1, y+half)
			count := (x1 - x0 + 1) * (y1 - y0 + 1)
			sum := integral.sum(x0, y0, x1, y1)
			mean := sum / count
			px := bounds.Min.X + x
			py := bounds.Min.Y + y
			if int(src.GrayAt(px, py).Y) > mean-c {
				out.SetGray(px, py, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// integralImage supports O(1) windowed sums over pixel values.
type integralImage struct {
	w, h int
	data []int
}

func buildIntegral(src *image.Gray) *integralImage {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	ii := &integralImage{w: w, h: h, data: make([]int, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			ii.data[(y+1)*(w+1)+(x+1)] = ii.data[y*(w+1)+(x+1)] + rowSum
		}
	}
	return ii
}

func (ii *integralImage) sum(x0, y0, x1, y1 int) int {
	stride := ii.w + 1
	return ii.data[(y1+1)*stride+(x1+1)] -
		ii.data[y0*stride+(x1+1)] -
		ii.data[(y1+1)*stride+x0] +
		ii.data[y0*stride+x0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
