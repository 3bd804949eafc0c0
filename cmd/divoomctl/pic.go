package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/fabkury/godivoom/pic"
)

func runPic(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("pic: missing subcommand or input\nUsage: divoomctl pic enc|dec <input>")
	}
	switch args[0] {
	case "enc":
		return runPicEnc(args[1:])
	case "dec":
		return runPicDec(args[1:])
	default:
		return fmt.Errorf("pic: unknown subcommand %q (use enc or dec)", args[0])
	}
}

func runPicEnc(args []string) error {
	fs := flag.NewFlagSet("pic enc", flag.ContinueOnError)
	output := fs.String("o", "", "output path (default: <input>.pic)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("pic enc: missing input PNG")
	}
	inputPath := fs.Arg(0)

	colors, err := readPNGAsColors(inputPath, pic.Width, pic.Height)
	if err != nil {
		return fmt.Errorf("pic enc: %w", err)
	}

	data, err := pic.Encode(colors)
	if err != nil {
		return fmt.Errorf("pic enc: %w", err)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(inputPath, ".pic")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("pic enc: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Encoded %s -> %s (%d bytes)\n", inputPath, outPath, len(data))
	return nil
}

func runPicDec(args []string) error {
	fs := flag.NewFlagSet("pic dec", flag.ContinueOnError)
	output := fs.String("o", "", "output path (default: <input>.png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("pic dec: missing input .pic file")
	}
	inputPath := fs.Arg(0)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("pic dec: %w", err)
	}

	colors, err := pic.Decode(data)
	if err != nil {
		return fmt.Errorf("pic dec: %w", err)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(inputPath, ".png")
	}
	if err := writeColorsAsPNG(outPath, colors, pic.Width, pic.Height); err != nil {
		return fmt.Errorf("pic dec: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Decoded %s -> %s\n", inputPath, outPath)
	return nil
}

// readPNGAsColors decodes a PNG and reduces its 8-bit channels to the
// codec's 4-bit-per-channel color space by keeping the high nibble
// (value>>4).
func readPNGAsColors(path string, w, h int) ([]pic.Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return nil, fmt.Errorf("expected a %dx%d image, got %dx%d", w, h, b.Dx(), b.Dy())
	}

	out := make([]pic.Color, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, pic.Color{
				R: uint8(r>>8) >> 4,
				G: uint8(g>>8) >> 4,
				B: uint8(bl>>8) >> 4,
			})
		}
	}
	return out, nil
}

// writeColorsAsPNG expands the codec's 4-bit channels back to 8-bit by
// replicating the nibble (v<<4 | v), so full white (0xF) round-trips to
// 0xFF rather than a dim 0xF0.
func writeColorsAsPNG(path string, colors []pic.Color, w, h int) error {
	if len(colors) != w*h {
		return fmt.Errorf("expected %d pixels, got %d", w*h, len(colors))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range colors {
		x := i % w
		y := i / w
		img.SetNRGBA(x, y, color.NRGBA{
			R: c.R<<4 | c.R,
			G: c.G<<4 | c.G,
			B: c.B<<4 | c.B,
			A: 255,
		})
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
