package predict

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const inputSize = 224

// ImageNet channel statistics, applied after scaling pixels to [0, 1].
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Preprocess decodes an uploaded image, resizes it to 224x224 with
// bilinear interpolation and normalizes channels with the ImageNet mean
// and standard deviation. The result is CHW float data, the layout the
// classifier expects.
func Preprocess(data []byte) ([]float32, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("predict: decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.BiLinear.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := make([]float32, 3*inputSize*inputSize)
	plane := inputSize * inputSize
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b := rgb8(resized.At(x, y))
			idx := y*inputSize + x
			out[idx] = (float32(r)/255 - imagenetMean[0]) / imagenetStd[0]
			out[plane+idx] = (float32(g)/255 - imagenetMean[1]) / imagenetStd[1]
			out[2*plane+idx] = (float32(b)/255 - imagenetMean[2]) / imagenetStd[2]
		}
	}
	return out, nil
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
