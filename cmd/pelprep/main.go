// The pelprep command preprocesses raw grayscale rasters into network-ready
// activation files: crop, scale, ones-complement, thresholding, and
// background suppression, reporting the centre of mass of the result.
//
// Usage:
//
//	pelprep -in raw.bin -width 2316 -height 3088 \
//	        -crop 150,250,2249,2999 -scale 150,196 \
//	        -complement -min 75,0 -denoise 0,5,0 \
//	        -out final.bin -floats
//
// Input rasters are one byte per pel unless -infloats is given; the output
// is bytes unless -floats selects big-endian float64 activations.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ffnet-ml/ffnet/internal/pel"
)

func main() {
	var (
		inPath     = flag.String("in", "", "input raster path")
		outPath    = flag.String("out", "", "output raster path")
		width      = flag.Int("width", 0, "input raster width in pels")
		height     = flag.Int("height", 0, "input raster height in pels")
		inFloats   = flag.Bool("infloats", false, "input holds float64 activations instead of bytes")
		outFloats  = flag.Bool("floats", false, "write float64 activations instead of bytes")
		cropSpec   = flag.String("crop", "", "crop rectangle x1,y1,x2,y2 (inclusive)")
		scaleSpec  = flag.String("scale", "", "scale target w,h")
		complement = flag.Bool("complement", false, "apply ones complement")
		minSpec    = flag.String("min", "", "force-min threshold,value")
		noiseSpec  = flag.String("denoise", "", "background,tolerance,value")
	)
	flag.Parse()

	if err := run(*inPath, *outPath, *width, *height, *inFloats, *outFloats,
		*cropSpec, *scaleSpec, *complement, *minSpec, *noiseSpec); err != nil {
		fmt.Fprintf(os.Stderr, "pelprep: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, width, height int, inFloats, outFloats bool,
	cropSpec, scaleSpec string, complement bool, minSpec, noiseSpec string) error {

	if inPath == "" || outPath == "" {
		return fmt.Errorf("both -in and -out are required")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("-width and -height must be positive")
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var a *pel.Array
	if inFloats {
		a, err = pel.ReadFloats(in, height, width)
	} else {
		a, err = pel.ReadBytes(in, height, width)
	}
	if err != nil {
		return err
	}

	if cropSpec != "" {
		n, err := parseInts(cropSpec, 4)
		if err != nil {
			return fmt.Errorf("-crop: %w", err)
		}
		if a, err = a.Crop(n[0], n[1], n[2], n[3]); err != nil {
			return err
		}
	}

	if scaleSpec != "" {
		n, err := parseInts(scaleSpec, 2)
		if err != nil {
			return fmt.Errorf("-scale: %w", err)
		}
		if a, err = a.Scale(n[0], n[1]); err != nil {
			return err
		}
	}

	if complement {
		a = a.OnesComplement()
	}

	if minSpec != "" {
		n, err := parseFloats(minSpec, 2)
		if err != nil {
			return fmt.Errorf("-min: %w", err)
		}
		a = a.ForceMin(n[0], n[1])
	}

	if noiseSpec != "" {
		n, err := parseFloats(noiseSpec, 3)
		if err != nil {
			return fmt.Errorf("-denoise: %w", err)
		}
		a = a.RemoveBackgroundNoise(n[0], n[1], n[2])
	}

	fmt.Printf("Image Width %d\n", a.Width())
	fmt.Printf("Image Height %d\n", a.Height())
	fmt.Printf("xCom %d\n", a.CentroidX())
	fmt.Printf("yCom %d\n", a.CentroidY())

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if outFloats {
		err = a.WriteFloats(out)
	} else {
		err = a.WriteBytes(out)
	}
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func parseInts(spec string, n int) ([]int, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(spec string, n int) ([]float64, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
