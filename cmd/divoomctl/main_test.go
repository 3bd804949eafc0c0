package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// binaryPath holds the path to the compiled divoomctl binary, built once in
// TestMain.
var binaryPath string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "divoomctl-test-bin-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	binaryPath = filepath.Join(tmp, "divoomctl")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Dir = rootDir()
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		binaryPath = ""
		os.Exit(m.Run())
	}
	os.Exit(m.Run())
}

func rootDir() string {
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(err)
	}
	return dir
}

func skipIfNoBinary(t *testing.T) {
	t.Helper()
	if binaryPath == "" {
		t.Skip("divoomctl binary not built; skipping")
	}
}

func runDivoomctl(t *testing.T, stdin []byte, args ...string) (stdout, stderr []byte, err error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// create11x11PNG writes a deterministic 11x11 gradient PNG, small enough
// to exercise pic/multipic's fixed 121-pixel frame.
func create11x11PNG(t *testing.T, dir, name string, seed int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 11, 11))
	for y := 0; y < 11; y++ {
		for x := 0; x < 11; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x + seed) * 16 % 256),
				G: uint8((y + seed) * 16 % 256),
				B: uint8(seed * 32 % 256),
				A: 255,
			})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test PNG: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encoding test PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing test PNG: %v", err)
	}
	return path
}

func TestPicEncDecRoundTrip(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	pngPath := create11x11PNG(t, dir, "frame.png", 1)

	_, stderr, err := runDivoomctl(t, nil, "pic", "enc", pngPath)
	if err != nil {
		t.Fatalf("pic enc failed: %v\nstderr: %s", err, stderr)
	}
	picPath := filepath.Join(dir, "frame.pic")
	if _, err := os.Stat(picPath); err != nil {
		t.Fatalf("expected %s to exist: %v", picPath, err)
	}

	_, stderr, err = runDivoomctl(t, nil, "pic", "dec", picPath)
	if err != nil {
		t.Fatalf("pic dec failed: %v\nstderr: %s", err, stderr)
	}
	decodedPath := filepath.Join(dir, "frame.png")
	// frame.png already exists as the input; pic dec's default output path
	// collides with it by design (same base name), so check it was rewritten
	// with valid PNG content rather than asserting byte-identical mtimes.
	data, err := os.ReadFile(decodedPath)
	if err != nil {
		t.Fatalf("reading decoded PNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("decoded output is not a valid PNG: %v", err)
	}
}

func TestMultipicEncDecRoundTrip(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	p1 := create11x11PNG(t, dir, "a.png", 1)
	p2 := create11x11PNG(t, dir, "b.png", 2)

	_, stderr, err := runDivoomctl(t, nil, "multipic", "enc", p1, p2)
	if err != nil {
		t.Fatalf("multipic enc failed: %v\nstderr: %s", err, stderr)
	}
	mpicPath := filepath.Join(dir, "a.mpic")
	if _, err := os.Stat(mpicPath); err != nil {
		t.Fatalf("expected %s to exist: %v", mpicPath, err)
	}

	_, stderr, err = runDivoomctl(t, nil, "multipic", "dec", mpicPath)
	if err != nil {
		t.Fatalf("multipic dec failed: %v\nstderr: %s", err, stderr)
	}
	for i := 0; i < 2; i++ {
		path := filepath.Join(dir, "a_"+string(rune('0'+i))+".png")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
}

func TestInfoReportsFrameCount(t *testing.T) {
	skipIfNoBinary(t)
	dir := t.TempDir()
	streamPath := filepath.Join(dir, "anim.bin")
	if err := os.WriteFile(streamPath, solidBlock16StreamForTest(), 0o644); err != nil {
		t.Fatalf("writing test stream: %v", err)
	}

	stdout, stderr, err := runDivoomctl(t, nil, "info", streamPath)
	if err != nil {
		t.Fatalf("info failed: %v\nstderr: %s", err, stderr)
	}
	if !bytes.Contains(stdout, []byte("Frames:      1")) {
		t.Fatalf("expected frame count in output, got:\n%s", stdout)
	}
}

// solidBlock16StreamForTest builds a single-frame, 1-color, 16x16 stream,
// mirroring the fixture construction in the root package's own tests.
func solidBlock16StreamForTest() []byte {
	const frameHeaderSize = 6
	bitstream := make([]byte, (16*16*1+7)/8)
	payload := append([]byte{1, 200, 100, 50}, bitstream...)
	length := frameHeaderSize + len(payload)
	out := make([]byte, length)
	out[0] = 0xAA
	out[1] = byte(length)
	out[2] = byte(length >> 8)
	out[3] = 1
	out[4] = 0
	out[5] = 0x00 // KindBlock16New
	copy(out[frameHeaderSize:], payload)
	return out
}
