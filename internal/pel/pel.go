// Package pel manipulates raw grayscale rasters ("pel arrays") used to turn
// scanned images into network input vectors: cropping, scaling, intensity
// complement, thresholding, background suppression, and centre-of-mass
// queries.
//
// Rasters are stored bottom-up in their binary files, one value per pel,
// either as single bytes or as big-endian float64 activations in [0, 1].
package pel

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"gorgonia.org/tensor"
)

// MaxPel is the largest raw pel intensity.
const MaxPel = 255.0

// Array is a height x width grid of pel intensities backed by a dense
// float64 tensor.
type Array struct {
	t *tensor.Dense
}

// New returns a zeroed height x width Array.
func New(height, width int) (*Array, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("pel: invalid dimensions %dx%d", height, width)
	}
	t := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(height, width))
	return &Array{t: t}, nil
}

// FromValues wraps row-major values (top row first) into an Array. The slice
// is used as the backing store, not copied.
func FromValues(height, width int, values []float64) (*Array, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("pel: invalid dimensions %dx%d", height, width)
	}
	if len(values) != height*width {
		return nil, fmt.Errorf("pel: %d values for %dx%d raster", len(values), height, width)
	}
	t := tensor.New(tensor.WithShape(height, width), tensor.WithBacking(values))
	return &Array{t: t}, nil
}

// Height returns the number of rows.
func (a *Array) Height() int { return a.t.Shape()[0] }

// Width returns the number of columns.
func (a *Array) Width() int { return a.t.Shape()[1] }

// Tensor returns the backing tensor, shared with the Array.
func (a *Array) Tensor() *tensor.Dense { return a.t }

func (a *Array) data() []float64 { return a.t.Data().([]float64) }

// At returns the pel at row i, column j.
func (a *Array) At(i, j int) float64 { return a.data()[i*a.Width()+j] }

// Crop returns the inclusive rectangle (x1,y1)-(x2,y2), x horizontal.
func (a *Array) Crop(x1, y1, x2, y2 int) (*Array, error) {
	if x1 < 0 || y1 < 0 || x2 < x1 || y2 < y1 || x2 >= a.Width() || y2 >= a.Height() {
		return nil, fmt.Errorf("pel: crop (%d,%d)-(%d,%d) outside %dx%d raster", x1, y1, x2, y2, a.Width(), a.Height())
	}

	h, w := y2-y1+1, x2-x1+1
	out := make([]float64, h*w)
	src := a.data()
	for i := 0; i < h; i++ {
		copy(out[i*w:(i+1)*w], src[(y1+i)*a.Width()+x1:(y1+i)*a.Width()+x1+w])
	}
	return FromValues(h, w, out)
}

// Scale resizes to width x height by nearest-neighbour sampling.
func (a *Array) Scale(width, height int) (*Array, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pel: invalid scale target %dx%d", width, height)
	}

	out := make([]float64, height*width)
	src := a.data()
	for i := 0; i < height; i++ {
		si := i * a.Height() / height
		for j := 0; j < width; j++ {
			sj := j * a.Width() / width
			out[i*width+j] = src[si*a.Width()+sj]
		}
	}
	return FromValues(height, width, out)
}

// OnesComplement replaces every pel v with MaxPel-v, inverting dark and
// light. Returns a new Array.
func (a *Array) OnesComplement() *Array {
	src := a.data()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = MaxPel - v
	}
	res, _ := FromValues(a.Height(), a.Width(), out)
	return res
}

// ForceMin replaces every pel below threshold with value.
func (a *Array) ForceMin(threshold, value float64) *Array {
	src := a.data()
	out := make([]float64, len(src))
	for i, v := range src {
		if v < threshold {
			out[i] = value
		} else {
			out[i] = v
		}
	}
	res, _ := FromValues(a.Height(), a.Width(), out)
	return res
}

// RemoveBackgroundNoise replaces every pel within tolerance of background
// with value.
func (a *Array) RemoveBackgroundNoise(background, tolerance, value float64) *Array {
	src := a.data()
	out := make([]float64, len(src))
	for i, v := range src {
		if math.Abs(v-background) <= tolerance {
			out[i] = value
		} else {
			out[i] = v
		}
	}
	res, _ := FromValues(a.Height(), a.Width(), out)
	return res
}

// CentroidX returns the intensity-weighted column index (centre of mass).
// A raster with zero total intensity centres on the middle column.
func (a *Array) CentroidX() int {
	src := a.data()
	total, weighted := 0.0, 0.0
	for i := 0; i < a.Height(); i++ {
		for j := 0; j < a.Width(); j++ {
			v := src[i*a.Width()+j]
			total += v
			weighted += v * float64(j)
		}
	}
	if total == 0 {
		return a.Width() / 2
	}
	return int(math.Round(weighted / total))
}

// CentroidY returns the intensity-weighted row index (centre of mass).
func (a *Array) CentroidY() int {
	src := a.data()
	total, weighted := 0.0, 0.0
	for i := 0; i < a.Height(); i++ {
		for j := 0; j < a.Width(); j++ {
			v := src[i*a.Width()+j]
			total += v
			weighted += v * float64(i)
		}
	}
	if total == 0 {
		return a.Height() / 2
	}
	return int(math.Round(weighted / total))
}

// Activations flattens the raster row-major and scales it to [0, 1] for use
// as a network input vector.
func (a *Array) Activations() []float64 {
	src := a.data()
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = v / MaxPel
	}
	return out
}

// ReadBytes reads a height x width raster of single-byte pels stored
// bottom-up, the raw image dump format.
func ReadBytes(r io.Reader, height, width int) (*Array, error) {
	buf := make([]byte, height*width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("pel: reading %dx%d byte raster: %w", height, width, err)
	}

	out := make([]float64, height*width)
	for i := height - 1; i >= 0; i-- {
		row := buf[(height-1-i)*width : (height-i)*width]
		for j, b := range row {
			out[i*width+j] = float64(b)
		}
	}
	return FromValues(height, width, out)
}

// WriteBytes writes the raster bottom-up, one byte per pel, clamping values
// to [0, MaxPel].
func (a *Array) WriteBytes(w io.Writer) error {
	src := a.data()
	buf := make([]byte, len(src))
	for i := a.Height() - 1; i >= 0; i-- {
		for j := 0; j < a.Width(); j++ {
			v := src[i*a.Width()+j]
			buf[(a.Height()-1-i)*a.Width()+j] = byte(math.Max(0, math.Min(MaxPel, v)))
		}
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("pel: writing byte raster: %w", err)
	}
	return nil
}

// ReadFloats reads a bottom-up raster of big-endian float64 activations in
// [0, 1] and scales them to pel intensities.
func ReadFloats(r io.Reader, height, width int) (*Array, error) {
	vals := make([]float64, height*width)
	if err := binary.Read(r, binary.BigEndian, vals); err != nil {
		return nil, fmt.Errorf("pel: reading %dx%d float raster: %w", height, width, err)
	}

	out := make([]float64, height*width)
	for i := height - 1; i >= 0; i-- {
		for j := 0; j < width; j++ {
			out[i*width+j] = vals[(height-1-i)*width+j] * MaxPel
		}
	}
	return FromValues(height, width, out)
}

// WriteFloats writes the raster bottom-up as big-endian float64 activations
// in [0, 1].
func (a *Array) WriteFloats(w io.Writer) error {
	src := a.data()
	vals := make([]float64, len(src))
	for i := a.Height() - 1; i >= 0; i-- {
		for j := 0; j < a.Width(); j++ {
			vals[(a.Height()-1-i)*a.Width()+j] = src[i*a.Width()+j] / MaxPel
		}
	}
	if err := binary.Write(w, binary.BigEndian, vals); err != nil {
		return fmt.Errorf("pel: writing float raster: %w", err)
	}
	return nil
}
