package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fabkury/godivoom"
)

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: divoomctl info <input>")
	}
	inputPath := args[0]

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("info: reading input: %w", err)
	}

	feat, err := divoom.GetFeatures(data)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	fmt.Printf("File:        %s\n", name)
	fmt.Printf("Frames:      %d\n", feat.FrameCount)
	fmt.Printf("Canvas size: %d x %d\n", feat.CanvasSize, feat.CanvasSize)
	fmt.Printf("Has fix:     %v\n", feat.HasFix)
	fmt.Printf("Total delay: %v\n", feat.TotalDelay)

	if inputPath != "-" {
		if fi, err := os.Stat(inputPath); err == nil {
			fmt.Printf("File size:   %d bytes\n", fi.Size())
		}
	}
	return nil
}
