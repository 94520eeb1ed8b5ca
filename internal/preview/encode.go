package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Ext returns the file extension for an output format.
func Ext(format string) string {
	return "." + format
}

// Encode writes img in the named format: webp (lossless), png or tga.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp", "":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("preview: webp encode: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("preview: png encode: %w", err)
		}
	case "tga":
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("preview: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("preview: unknown format %q", format)
	}
	return nil
}

// EncodeAnimation writes frames as a looping animated WebP.
func EncodeAnimation(w io.Writer, frames []image.Image, frameTime time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("preview: animation has no frames")
	}
	ms := uint(frameTime / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i := range frames {
		ani.Durations[i] = ms
		ani.Disposals[i] = 1
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("preview: webp animation: %w", err)
	}
	return nil
}
