package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fabkury/godivoom/multipic"
	"github.com/fabkury/godivoom/pic"
)

func runMultipic(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("multipic: missing subcommand\nUsage: divoomctl multipic enc|dec <input...>")
	}
	switch args[0] {
	case "enc":
		return runMultipicEnc(args[1:])
	case "dec":
		return runMultipicDec(args[1:])
	default:
		return fmt.Errorf("multipic: unknown subcommand %q (use enc or dec)", args[0])
	}
}

func runMultipicEnc(args []string) error {
	fs := flag.NewFlagSet("multipic enc", flag.ContinueOnError)
	output := fs.String("o", "", "output path (default: <first input>.mpic)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("multipic enc: missing input PNG(s)")
	}
	inputs := fs.Args()

	frames := make([][]pic.Color, len(inputs))
	for i, path := range inputs {
		colors, err := readPNGAsColors(path, pic.Width, pic.Height)
		if err != nil {
			return fmt.Errorf("multipic enc: %s: %w", path, err)
		}
		frames[i] = colors
	}

	data, err := multipic.Encode(frames)
	if err != nil {
		return fmt.Errorf("multipic enc: %w", err)
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(inputs[0], ".mpic")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("multipic enc: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Encoded %d frames -> %s (%d bytes)\n", len(frames), outPath, len(data))
	return nil
}

func runMultipicDec(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("multipic dec: missing input .mpic file")
	}
	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("multipic dec: %w", err)
	}

	frames, err := multipic.Decode(data)
	if err != nil {
		return fmt.Errorf("multipic dec: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	dir := filepath.Dir(inputPath)
	for i, colors := range frames {
		outPath := filepath.Join(dir, base+"_"+strconv.Itoa(i)+".png")
		if err := writeColorsAsPNG(outPath, colors, pic.Width, pic.Height); err != nil {
			return fmt.Errorf("multipic dec: frame %d: %w", i, err)
		}
	}
	fmt.Fprintf(os.Stderr, "Decoded %s -> %d frames (%s_0.png .. %s_%d.png)\n",
		inputPath, len(frames), base, base, len(frames)-1)
	return nil
}
