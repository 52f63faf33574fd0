package ocr

import (
	"image"
	"image/color"
)

// Binarize converts an image to grayscale and applies an Otsu threshold,
// which flattens shadows and paper texture before character recognition.
func Binarize(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	var hist [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			gray.SetGray(x, y, g)
			hist[g.Y]++
		}
	}

	threshold := otsuThreshold(hist, b.Dx()*b.Dy())

	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// otsuThreshold picks the gray level that maximizes between-class variance.
func otsuThreshold(hist [256]int, total int) uint8 {
	if total == 0 {
		return 128
	}
	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var best float64
	var threshold uint8
	for i, c := range hist {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(c)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(i)
		}
	}
	return threshold
}
