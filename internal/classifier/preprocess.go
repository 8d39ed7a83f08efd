package classifier

import (
	"image"

	"golang.org/x/image/draw"
)

const (
	inputSize = 224
	channels  = 3
)

// Preprocess converts a decoded image into the model's input layout: resize
// to 224x224 with nearest-neighbor interpolation, then RGB byte values
// scaled to [0,1] float32 in HWC order.
func Preprocess(img image.Image) []float32 {
	resized := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.NearestNeighbor.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	data := make([]float32, inputSize*inputSize*channels)
	i := 0
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			px := resized.RGBAAt(x, y)
			data[i] = float32(px.R) / 255.0
			data[i+1] = float32(px.G) / 255.0
			data[i+2] = float32(px.B) / 255.0
			i += channels
		}
	}
	return data
}
