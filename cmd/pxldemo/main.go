// Command pxldemo renders a pxl test card headlessly and saves it as a PNG.
package main

import (
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pxl"
	"github.com/gogpu/pxl/surface"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Output  string `short:"o" long:"output"  default:"pxldemo.png" description:"Output PNG file"`
	Backend string `short:"b" long:"backend" default:"vulkan" choice:"vulkan" choice:"noop" description:"GPU backend"`
	Width   int    `short:"W" long:"width"   default:"160" description:"Framebuffer width"`
	Height  int    `short:"H" long:"height"  default:"120" description:"Framebuffer height"`
	Window  string `short:"w" long:"window"  default:"640x480" description:"Output image size (WxH)"`
	Frames  int    `short:"f" long:"frames"  default:"1" description:"Number of logical frames to render"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)

	if _, err := cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	return opts
}

func parseWindow(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("window size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("window size %q: must be positive", s)
	}
	return w, h, nil
}

func backendOf(name string) gputypes.Backend {
	if name == "noop" {
		return gputypes.BackendEmpty
	}
	return gputypes.BackendVulkan
}

func main() {
	opts := parseCmd()

	if opts.Verbose {
		pxl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	winW, winH, err := parseWindow(opts.Window)
	if err != nil {
		log.Fatal(err)
	}

	r, err := pxl.NewHeadless(opts.Width, opts.Height,
		pxl.WithBackend(backendOf(opts.Backend)),
		pxl.WithSurfaceFormat(gputypes.TextureFormatRGBA8Unorm),
	)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()

	device, queue := r.HAL()
	t, err := surface.NewByName("offscreen", device, queue, surface.Options{
		Width:  winW,
		Height: winH,
		Format: gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		log.Fatalf("Failed to create target: %v", err)
	}
	target, ok := t.(*surface.Offscreen)
	if !ok {
		log.Fatalf("Target %T cannot be read back", t)
	}
	defer target.Close()

	sprite, err := r.Image(0)
	if err != nil {
		log.Fatal(err)
	}
	loadSprite(sprite)

	vp := pxl.Letterbox(winW, winH, opts.Width, opts.Height)
	for frame := 0; frame < opts.Frames; frame++ {
		r.Begin()
		drawTestCard(r, frame)
		if err := r.End(); err != nil {
			log.Fatalf("Failed to end frame: %v", err)
		}
		if err := r.Render(target, vp, pxl.DefaultPalette, 0x101010); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
	}

	img, err := target.Snapshot()
	if err != nil {
		log.Fatalf("Failed to read back: %v", err)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Test card saved to %s (%dx%d, framebuffer %dx%d)\n",
		opts.Output, winW, winH, opts.Width, opts.Height)
}

// loadSprite draws an 8x8 smiley into the top-left corner of img. Colour 0
// is the transparent key.
func loadSprite(img *pxl.Image) {
	rows := [8]string{
		"..6666..",
		".666666.",
		"66066066",
		"66666666",
		"60666606",
		"66000066",
		".666666.",
		"..6666..",
	}
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '6':
				img.Set(x, y, 6)
			case '0':
				img.Set(x, y, 0)
			default:
				img.Set(x, y, 1)
			}
		}
	}
}

func drawTestCard(r *pxl.Renderer, frame int) {
	w, h := r.Size()

	r.Cls(1)

	// Colour bars.
	bar := w / pxl.PaletteSize
	for i := 0; i < pxl.PaletteSize; i++ {
		r.Rect(i*bar, 0, bar, 12, i)
	}

	r.RectB(0, 0, w, h, 7)
	r.Line(0, h-1, w-1, 14, 5)

	r.Circ(w/4, h/2, 16, 3)
	r.CircB(w/4, h/2, 20, 7)

	// Remapped copy of the circle.
	if err := r.Pal(3, 4); err == nil {
		r.Circ(3*w/4, h/2, 16, 3)
		r.ResetPal()
	}

	// Clipped sprite row, the second one mirrored.
	r.Clip(w/2-24, h/2-4, 48, 8)
	r.Blt(w/2-20, h/2-4, 0, 0, 0, 8, 8, 1)
	r.Blt(w/2+12, h/2-4, 0, 0, 0, -8, 8, 1)
	r.ResetClip()

	r.Text(4, h-16, fmt.Sprintf("PXL FRAME %d", frame), 7)
}
