package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf collapsed", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs of spaces", "a\t\tb   c", "a b c"},
		{"blank line runs collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"trailing spaces trimmed", "a  \nb ", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHeuristicConfidence(t *testing.T) {
	low := heuristicConfidence("zzz")
	rich := heuristicConfidence("ACME STORE\n03/01/2024\nTotal $20.00\n" + strings.Repeat("item 1.00\n", 15))
	if low >= rich {
		t.Errorf("confidence for noise (%v) should be below receipt-like text (%v)", low, rich)
	}
	if rich > 1.0 {
		t.Errorf("confidence %v exceeds 1.0", rich)
	}
}

func TestBinarize(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 1))
	src.SetGray(0, 0, color.Gray{Y: 10})
	src.SetGray(1, 0, color.Gray{Y: 20})
	src.SetGray(2, 0, color.Gray{Y: 240})
	src.SetGray(3, 0, color.Gray{Y: 250})

	out := Binarize(src)
	for x, want := range []uint8{0, 0, 255, 255} {
		if got := out.GrayAt(x, 0).Y; got != want {
			t.Errorf("pixel %d = %d, want %d", x, got, want)
		}
	}
}

type stubRunner struct {
	stdout []byte
	err    error
	args   []string
}

func (s *stubRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	s.args = args
	return s.stdout, nil, s.err
}

func testImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	return img
}

func TestRecognize(t *testing.T) {
	runner := &stubRunner{stdout: []byte("ACME STORE\r\nTotal   $20.00\n")}
	e := NewExtractor(Config{TempDir: t.TempDir()}, nil)
	e.runner = runner

	res, err := e.Recognize(context.Background(), testImage())
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if want := "ACME STORE\nTotal $20.00"; res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if res.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", res.Confidence)
	}

	joined := strings.Join(runner.args, " ")
	if !strings.Contains(joined, "-l eng") || !strings.Contains(joined, "--psm 6") {
		t.Errorf("tesseract args missing defaults: %q", joined)
	}
}

func TestRecognizeCommandError(t *testing.T) {
	e := NewExtractor(Config{TempDir: t.TempDir()}, nil)
	e.runner = &stubRunner{err: errors.New("exit status 1")}

	if _, err := e.Recognize(context.Background(), testImage()); err == nil {
		t.Fatal("expected error from failed command")
	}
}
