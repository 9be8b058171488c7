// Package imaging provides the image preprocessing primitives used by the
// multi-pass OCR engine: grayscale conversion, contrast and sharpness
// enhancement, median denoising, thresholding and cropping.
package imaging

import (
	"image"
	"image/color"
	"sort"

	xdraw "golang.org/x/image/draw"
)

// ToGray converts any image to 8-bit grayscale.
func ToGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// AdjustContrast scales pixel distance from the image mean by factor.
// factor 1.0 is a no-op; 2.0 doubles contrast.
func AdjustContrast(src *image.Gray, factor float64) *image.Gray {
	mean := meanLuminance(src)
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := float64(src.GrayAt(x, y).Y)
			out.SetGray(x, y, color.Gray{Y: clampByte(mean + (v-mean)*factor)})
		}
	}
	return out
}

// Sharpen blends the image away from a 3x3 box blur of itself. factor 1.0 is
// a no-op; values above 1.0 sharpen.
func Sharpen(src *image.Gray, factor float64) *image.Gray {
	blurred := boxBlur3(src)
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			orig := float64(src.GrayAt(x, y).Y)
			soft := float64(blurred.GrayAt(x, y).Y)
			out.SetGray(x, y, color.Gray{Y: clampByte(soft + (orig-soft)*factor)})
		}
	}
	return out
}

// MedianFilter3 applies a 3x3 median filter, removing salt-and-pepper noise
// while preserving edges.
func MedianFilter3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	window := make([]byte, 0, 9)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			window = window[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					window = append(window, src.GrayAt(nx, ny).Y)
				}
			}
			sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
			out.SetGray(x, y, color.Gray{Y: window[len(window)/2]})
		}
	}
	return out
}

// Crop extracts the given rectangle, expanded by pad pixels and clamped to
// the image bounds.
func Crop(src image.Image, rect image.Rectangle, pad int) *image.Gray {
	expanded := image.Rect(rect.Min.X-pad, rect.Min.Y-pad, rect.Max.X+pad, rect.Max.Y+pad)
	expanded = expanded.Intersect(src.Bounds())
	gray := ToGray(src)
	out := image.NewGray(image.Rect(0, 0, expanded.Dx(), expanded.Dy()))
	for y := 0; y < expanded.Dy(); y++ {
		for x := 0; x < expanded.Dx(); x++ {
			out.SetGray(x, y, gray.GrayAt(expanded.Min.X+x, expanded.Min.Y+y))
		}
	}
	return out
}

// ScaleUp resamples the image by an integer factor with Catmull-Rom
// interpolation. Small heading crops recognize noticeably better when
// upscaled before OCR.
func ScaleUp(src *image.Gray, factor int) *image.Gray {
	if factor <= 1 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func boxBlur3(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					sum += int(src.GrayAt(nx, ny).Y)
					n++
				}
			}
			out.SetGray(x, y, color.Gray{Y: byte(sum / n)})
		}
	}
	return out
}

func meanLuminance(src *image.Gray) float64 {
	bounds := src.Bounds()
	if bounds.Empty() {
		return 0
	}
	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(src.GrayAt(x, y).Y)
		}
	}
	return sum / float64(bounds.Dx()*bounds.Dy())
}

func clampByte(v float64) byte {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return byte(v)
	}
}
