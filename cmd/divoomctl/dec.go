package main

import (
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fabkury/godivoom"
	"github.com/fabkury/godivoom/stream"
)

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	canvas := fs.Int("canvas", 64, "output canvas size: 16, 32, 64, or 128")
	frameIdx := fs.Int("frame", -1, "decode only this frame index to a single PNG (-1=all frames as GIF)")
	output := fs.String("o", "", `output path (default: <input>.gif or <input>.png, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dec: missing input file\nUsage: divoomctl dec [options] <input>")
	}
	inputPath := fs.Arg(0)

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("dec: reading input: %w", err)
	}

	frames, err := divoom.Decode(data, *canvas)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	if len(frames) == 0 {
		return fmt.Errorf("dec: stream has no decodable frames")
	}

	if *frameIdx >= 0 {
		if *frameIdx >= len(frames) {
			return fmt.Errorf("dec: frame %d out of range (stream has %d)", *frameIdx, len(frames))
		}
		return writeSinglePNG(frames[*frameIdx], *canvas, inputPath, *output)
	}
	return writeAnimatedGIF(frames, *canvas, inputPath, *output)
}

func frameToImage(f stream.Frame, canvas int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, canvas, canvas))
	for i := 0; i < canvas*canvas; i++ {
		o := i * 3
		d := i * 4
		img.Pix[d] = f.Pixels[o]
		img.Pix[d+1] = f.Pixels[o+1]
		img.Pix[d+2] = f.Pixels[o+2]
		img.Pix[d+3] = 255
	}
	return img
}

func writeSinglePNG(f stream.Frame, canvas int, inputPath, outputPath string) error {
	img := frameToImage(f, canvas)

	if outputPath == "-" {
		return png.Encode(os.Stdout, img)
	}
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, ".png")
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("dec: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}
	fmt.Fprintf(os.Stderr, "Decoded %s -> %s\n", inputPath, outputPath)
	return nil
}

// writeAnimatedGIF quantizes every frame to the Plan9 palette with
// Floyd-Steinberg dithering, since GIF itself has no truecolor mode.
func writeAnimatedGIF(frames []stream.Frame, canvas int, inputPath, outputPath string) error {
	g := &gif.GIF{}
	b := image.Rect(0, 0, canvas, canvas)
	for _, f := range frames {
		img := frameToImage(f, canvas)
		paletted := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, b, img, b.Min)
		g.Image = append(g.Image, paletted)

		delay := int(f.Delay.Milliseconds() / 10) // GIF delay unit is 1/100s
		if delay < 1 {
			delay = 10
		}
		g.Delay = append(g.Delay, delay)
	}

	if outputPath == "-" {
		return gif.EncodeAll(os.Stdout, g)
	}
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, ".gif")
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(out, g); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("dec: encoding GIF: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}
	fmt.Fprintf(os.Stderr, "Decoded %s -> %s (%d frames)\n", inputPath, outputPath, len(g.Image))
	return nil
}

// defaultOutputPath derives an output path alongside inputPath by swapping
// its extension, so a caller that gives a path outside the working
// directory still gets output written next to the input rather than into
// the process's cwd.
func defaultOutputPath(inputPath, ext string) string {
	if inputPath == "-" {
		return "output" + ext
	}
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, base+ext)
}
