package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jinjor/desktop-theremin/src/audio"
	"github.com/jinjor/desktop-theremin/src/panel"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	seconds := flag.Float64("seconds", 4, "length of each file")
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		panic("dir is not passed")
	}
	log.SetFlags(log.Lshortfile)

	p := audio.NewParams()
	if *configPath != "" {
		loaded, err := audio.LoadParams(*configPath)
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
		p = loaded
	}
	frames := int(*seconds * float64(p.SampleRate()))

	g, ctx := errgroup.WithContext(context.Background())
	for _, w := range audio.WaveformTypes() {
		w := w
		g.Go(func() error {
			path := filepath.Join(dir, w.String()+".wav")
			if err := renderSweep(ctx, p, w, frames, path); err != nil {
				return fmt.Errorf("%s: %w", w, err)
			}
			log.Printf("saved %s\n", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("Successfully rendered.")
}

// renderSweep plays one waveform while the left hand moves from the far
// calibration point to the near one and back.
func renderSweep(ctx context.Context, p *audio.Params, w audio.WaveformType, frames int, path string) error {
	voice := p.NewVoice()
	voice.SetType(w)
	renderer, err := audio.NewRenderer(voice, p)
	if err != nil {
		return err
	}
	host := panel.NewSimHost()
	host.Left.SetDistance(panel.DefaultHigh)
	host.Right.SetDistance((panel.DefaultLow + panel.DefaultHigh) / 2)
	pn := host.Panel()
	buttons := panel.NewButtons(pn.Pins)
	buttons.SetDebounceGap(p.DebounceGap())
	left := panel.NewRelativeSensor(pn.Left)
	right := panel.NewRelativeSensor(pn.Right)
	left.Init(audio.RenderStart)
	right.Init(audio.RenderStart)
	control := audio.NewControl(voice, buttons, left, right, p)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ww := audio.NewWAVWriter(f, p.SampleRate())

	total := time.Duration(int64(frames) * int64(time.Second) / int64(p.SampleRate()))
	sweep := func(elapsed time.Duration) {
		x := 2 * float64(elapsed) / float64(total)
		if x > 1 {
			x = 2 - x
		}
		host.Left.SetDistance(panel.DefaultHigh - x*(panel.DefaultHigh-panel.DefaultLow))
	}
	if err := renderer.Render(ctx, control, frames, sweep, ww.Write); err != nil {
		return err
	}
	if err := ww.Close(); err != nil {
		return err
	}
	return f.Close()
}
