package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/olekukonko/tablewriter"
	"github.com/shadercoder/Salty/renderer"
	"github.com/shadercoder/Salty/scene"
	"github.com/shadercoder/Salty/scene/compiler"
	"github.com/urfave/cli"
)

// Render a still frame of a builtin scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.String("scene")
	parsed, err := scene.Builtin(sceneName, uint32(ctx.Int("width")), uint32(ctx.Int("height")))
	if err != nil {
		return fmt.Errorf("%s (available: %s)", err, strings.Join(scene.BuiltinNames(), ", "))
	}

	sc, err := compiler.Compile(parsed)
	if err != nil {
		return err
	}
	logger.Noticef("scene statistics\n%s", sc.Stats())

	outputDir := ctx.String("out")
	if err = os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:           uint32(ctx.Int("width")),
		FrameH:           uint32(ctx.Int("height")),
		SamplesPerPixel:  ctx.Int("spp"),
		SubSamples:       ctx.Int("sub-samples"),
		MaxBounces:       ctx.Int("num-bounces"),
		NumWorkers:       ctx.Int("workers"),
		MaxRenderSeconds: ctx.Float64("max-seconds"),
		SnapshotInterval: ctx.Float64("snapshot-interval"),
		OutputDir:        outputDir,
		Seed:             uint32(ctx.Int("seed")),
		FrameWriter:      writePng,
	}

	r, err := renderer.New(sc, opts)
	if err != nil {
		return err
	}

	if err = r.Render(); err != nil {
		return err
	}

	displayFrameStats(r.Stats())
	return nil
}

// Encode a resolved linear RGB frame as an 8-bit gamma-corrected PNG.
// Tone mapping beyond the 2.2 gamma curve is deliberately absent; the
// renderer emits linear radiance and this writer is the only place the
// container format is known.
func writePng(name string, width, height uint32, pixels []float32) error {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			offset := (y*width + x) * 3
			img.SetRGBA(int(x), int(y), color.RGBA{
				R: encodeChannel(pixels[offset]),
				G: encodeChannel(pixels[offset+1]),
				B: encodeChannel(pixels[offset+2]),
				A: 255,
			})
		}
	}

	f, err := os.Create(name + ".png")
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func encodeChannel(v float32) uint8 {
	v = math32.Pow(clamp01(v), 1.0/2.2)
	return uint8(v*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Display the post-render statistics table.
func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Workers", "Tiles", "Dropped samples", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d/%d", stats.TilesRendered, stats.TilesTotal),
		fmt.Sprintf("%d", stats.DroppedSamples),
		fmt.Sprintf("%s", stats.RenderTime),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
