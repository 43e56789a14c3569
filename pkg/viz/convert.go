package viz

import (
	"bytes"
	"fmt"
	"os/exec"

	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// The Graphviz renderer emits SVG natively; PDF and PNG artifacts are
// produced by piping that SVG through rsvg-convert. The tool ships with
// librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).

// ToPDF converts a rendered bond graph SVG to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts a rendered bond graph SVG to PNG at the given scale
// factor. A scale of 2.0 doubles the raster resolution.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, moltexterrors.New(moltexterrors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command("rsvg-convert", append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, moltexterrors.Wrap(moltexterrors.ErrCodeInternal, err,
			"rsvg-convert %s: %s", format, stderr.String())
	}
	return out.Bytes(), nil
}
