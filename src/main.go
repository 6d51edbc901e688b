package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jinjor/desktop-theremin/src/audio"
	"github.com/jinjor/desktop-theremin/src/panel"
	"golang.org/x/sync/errgroup"
)

type host interface {
	Panel() panel.Panel
	Run(ctx context.Context) error
}

// simHost has no input of its own; it runs until cancelled.
type simHost struct {
	*panel.SimHost
}

func (h simHost) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// setFlags collects repeated -set key=value arguments.
type setFlags []string

func (s *setFlags) String() string     { return strings.Join(*s, ",") }
func (s *setFlags) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var sets setFlags
	configPath := flag.String("config", "", "JSON config file")
	hostName := flag.String("host", "keyboard", "input host: keyboard, midi or none")
	report := flag.Duration("report", time.Second, "status report interval (0 disables)")
	verbose := flag.Bool("v", false, "log every registered button press")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config and exit")
	flag.Var(&sets, "set", "override a config key, key=value (repeatable)")
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	p, err := loadParams(*configPath, sets)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	if *dumpConfig {
		fmt.Println(string(p.ToJSON()))
		return
	}

	h, err := newHost(*hostName)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	if _, ok := h.(*panel.KeyboardHost); ok {
		log.SetOutput(&crlfWriter{w: os.Stderr})
	}

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	voice := p.NewVoice()
	device, err := audio.NewAudio(voice, p)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer device.Close()

	pn := h.Panel()
	buttons := panel.NewButtons(pn.Pins)
	buttons.SetDebounceGap(p.DebounceGap())
	if *verbose {
		for i := 0; i < panel.NumButtons; i++ {
			buttons.OnPress(i, func(i int) {
				log.Printf("button %d pressed\n", i)
			})
		}
	}
	left := panel.NewRelativeSensor(pn.Left)
	right := panel.NewRelativeSensor(pn.Right)
	now := time.Now()
	left.Init(now)
	right.Init(now)
	control := audio.NewControl(voice, buttons, left, right, p)
	if kb, ok := h.(*panel.KeyboardHost); ok {
		kb.SetCommand('l', control.CalibrateLow)
		kb.SetCommand('h', control.CalibrateHigh)
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		select {
		case sig := <-signalCh:
			log.Printf("Caught signal %s: shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return device.Start(ctx)
	})
	g.Go(func() error {
		return control.Run(ctx)
	})
	g.Go(func() error {
		return h.Run(ctx)
	})
	if *report > 0 {
		g.Go(func() error {
			return sendReports(ctx, *report, device, voice, control)
		})
	}
	err = g.Wait()
	if err != nil && !errors.Is(err, panel.ErrQuit) {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func loadParams(path string, sets []string) (*audio.Params, error) {
	p := audio.NewParams()
	if path != "" {
		loaded, err := audio.LoadParams(path)
		if err != nil {
			return nil, err
		}
		p = loaded
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -set %q, want key=value", kv)
		}
		if err := p.Set(key, value); err != nil {
			return nil, fmt.Errorf("-set %s: %w", key, err)
		}
	}
	return p, nil
}

func newHost(name string) (host, error) {
	switch name {
	case "keyboard":
		return panel.NewKeyboardHost(), nil
	case "midi":
		return panel.NewMIDIHost(), nil
	case "none":
		return simHost{panel.NewSimHost()}, nil
	}
	return nil, fmt.Errorf("unknown host %q", name)
}

func sendReports(ctx context.Context, interval time.Duration, device *audio.Audio, voice *audio.Theremin, control *audio.Control) error {
	t := time.NewTicker(interval)
	defer t.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("sendReports() interrupted")
			break loop
		case <-t.C:
			log.Printf(
				"%v/%v %v: %.1fHz (peak %.1fHz) amp %.2f octave %d\n",
				voice.SystemMode(),
				voice.OutputMode(),
				voice.Type(),
				voice.Frequency(),
				device.PeakFrequency(),
				voice.Amplitude(),
				control.Octave(),
			)
		}
	}
	log.Println("sendReports() ended.")
	return nil
}

// crlfWriter keeps log lines aligned while the terminal is in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	fixed := bytes.ReplaceAll(bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n")), []byte("\n"), []byte("\r\n"))
	if _, err := c.w.Write(fixed); err != nil {
		return 0, err
	}
	return len(p), nil
}
