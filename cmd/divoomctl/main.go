// Command divoomctl decodes and inspects Divoom pixel-animation streams
// from the command line, and converts the small pic/multipic fixed-size
// image formats to and from PNG.
//
// Usage:
//
//	divoomctl dec [options] <input>       animation stream → PNG of one frame, or GIF
//	divoomctl info <input>                display stream metadata
//	divoomctl preview [options] <input>   zoom-scaled PNG of one frame
//	divoomctl pic enc <input.png>         PNG (11x11) → pic binary
//	divoomctl pic dec <input.pic>         pic binary → PNG
//	divoomctl multipic enc <in1.png> ...  PNGs (11x11) → multipic binary
//	divoomctl multipic dec <input.mpic>   multipic binary → numbered PNGs
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "pic":
		err = runPic(os.Args[2:])
	case "multipic":
		err = runMultipic(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "divoomctl: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "divoomctl: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  divoomctl dec [options] <input>       Decode an animation stream to PNG/GIF
  divoomctl info <input>                Show stream metadata
  divoomctl preview [options] <input>   Zoom-scaled PNG preview of one frame
  divoomctl pic enc|dec <input>         Convert a single 11x11 frame
  divoomctl multipic enc|dec <input...> Convert a multi-frame 11x11 container

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "divoomctl <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for path, or stdin when path is "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
