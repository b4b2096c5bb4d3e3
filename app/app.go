// Package app runs a sample: it starts the services, drives the frame loop
// and drains the game on exit. With a screen the loop draws the menu and
// routes terminal input to it; headless, console commands are read from a
// line-oriented input and the log is written to the output.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/audio"
	"github.com/lixenwraith/gamesvc-samples/clock"
	"github.com/lixenwraith/gamesvc-samples/config"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/game"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/service"
	"github.com/lixenwraith/gamesvc-samples/status"
	"github.com/lixenwraith/gamesvc-samples/ui"
)

// Margin is the gap in cells between dialogs and the window edge
const Margin = 1

// Options replaces process resources; the zero value uses the real ones
type Options struct {
	// Screen creates the terminal screen; ignored when headless
	Screen ScreenFactory
	// Audio is the sound output, audio.Speaker when nil
	Audio audio.Output
	// Platform bypasses the configured backend when non-nil
	Platform sdk.Platform
	Clock    clock.Provider
	// Input feeds console commands when headless, os.Stdin when nil
	Input io.Reader
	// Output receives the log when headless, os.Stdout when nil
	Output io.Writer
	// NoSignals leaves process signals alone
	NoSignals bool
}

// App owns the services and the game of one run
type App struct {
	cfg  config.Config
	opts Options

	log    *logging.DebugLog
	logOut io.WriteCloser
	status *status.Registry
	bus    *event.Bus
	clock  clock.Provider
	hub    *service.Hub

	platform *PlatformService
	player   *audio.Player
	screen   *Screen

	game       *game.Game
	batch      *ui.Batch
	translator ui.Translator
	lines      <-chan string

	frames      *atomic.Int64
	frameMs     *status.AtomicFloat
	removeSink  func()
	stopSignals func()
	started     bool
	closed      bool
}

// New wires the services for cfg; nothing is started until Start or Run
func New(cfg config.Config, opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Speaker{}
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logOut, err := logging.OpenFile(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, err
	}
	var w io.Writer = logOut
	if cfg.Headless {
		w = io.MultiWriter(logOut, opts.Output)
	}
	log := logging.New("gamesvc", w)

	reg := status.NewRegistry()
	a := &App{
		cfg:    cfg,
		opts:   opts,
		log:    log,
		logOut: logOut,
		status: reg,
		bus:    event.NewBus(reg),
		clock:  opts.Clock,
		hub:    service.NewHub(log),
		batch:  ui.NewBatch(),
		frames: reg.Ints.Get("app.frames"),
	}
	a.frameMs = reg.Floats.Get("app.frame_ms")
	reg.Strings.Get("app.sample").Store(string(cfg.Sample))
	reg.Strings.Get("app.backend").Store(string(cfg.Backend.Kind))

	a.platform = NewPlatformService(cfg.Backend, opts.Clock, log)
	if opts.Platform != nil {
		a.platform.UsePlatform(opts.Platform)
	}
	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio
	a.player = audio.NewPlayer(acfg, opts.Audio, log)

	services := []service.Service{a.platform, a.player}
	if !cfg.Headless {
		a.screen = NewScreen(opts.Screen, cfg.ColorMode)
		services = append(services, a.screen)
	}
	for _, svc := range services {
		if err := a.hub.Register(svc); err != nil {
			logOut.Close()
			return nil, err
		}
	}
	return a, nil
}

// Game returns the running game, nil before Start
func (a *App) Game() *game.Game { return a.game }

// Bus returns the event bus
func (a *App) Bus() *event.Bus { return a.bus }

// Status returns the metrics registry
func (a *App) Status() *status.Registry { return a.status }

// Log returns the debug log
func (a *App) Log() *logging.DebugLog { return a.log }

// Platform returns the connected backend, nil before Start
func (a *App) Platform() sdk.Platform { return a.platform.Platform() }

// Screen returns the terminal screen, nil when headless or stopped
func (a *App) Screen() tcell.Screen {
	if a.screen == nil {
		return nil
	}
	return a.screen.Screen()
}

// Start brings up the services and creates the game
func (a *App) Start() error {
	if a.started {
		return nil
	}
	if err := a.hub.InitAll(); err != nil {
		return err
	}
	if err := a.hub.StartAll(); err != nil {
		return err
	}
	a.started = true

	a.game = game.New(game.Context{
		Log:      a.log,
		Bus:      a.bus,
		Platform: a.platform.Platform(),
		Clock:    a.clock,
		Config:   a.cfg,
		Status:   a.status,
		Margin:   Margin,
	})
	a.bus.Subscribe(a.game)
	a.bus.Subscribe(a.player)

	if a.screen != nil {
		a.removeSink = a.log.AddSink(a.game.Menu().Console())
		w, h := a.screen.Screen().Size()
		a.game.Menu().UpdateLayout(w, h)
	} else {
		a.lines = readLines(a.opts.Input)
	}
	if !a.opts.NoSignals {
		a.stopSignals = watchSignals(a.bus)
	}

	a.game.Create()
	return nil
}

// Run starts the app and runs the frame loop until the game has drained after
// an exit request; cancelling ctx requests the exit
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		a.Close()
		return err
	}
	defer a.Close()

	interval := a.cfg.FrameInterval.Duration
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var events <-chan tcell.Event
	if a.screen != nil {
		events = a.screen.Events()
	}
	done := ctx.Done()
	sw := clock.NewStopwatch(a.clock)

	for {
		select {
		case <-done:
			done = nil
			a.requestExit()

		case ev := <-events:
			a.handle(ev)

		case line, ok := <-a.lines:
			if !ok {
				a.lines = nil
				a.requestExit()
				continue
			}
			a.game.Console().Run(line)

		case <-ticker.C:
			if !a.frame(sw.Lap()) {
				return nil
			}
		}
	}
}

// requestExit asks for a direct exit through the bus
func (a *App) requestExit() {
	a.bus.Emit(event.NewText(event.EventExitRequested, "", "", 1))
}

// frame runs one loop iteration and reports whether the loop continues
// Order: platform callbacks, posted events, game update, draw
func (a *App) frame(dt time.Duration) bool {
	if p := a.platform.Platform(); p != nil {
		p.Tick()
	}
	a.bus.Pump()

	if a.game.ExitRequested() && !a.game.ShuttingDown() {
		a.game.OnShutdown()
	}
	a.game.Update(dt)
	a.render()
	a.frames.Add(1)
	a.frameMs.Set(float64(dt) / float64(time.Millisecond))

	return !a.game.ShuttingDown() || a.game.IsShutdownDelayed()
}

func (a *App) render() {
	if a.screen == nil {
		return
	}
	s := a.screen.Screen()
	if s == nil {
		return
	}
	s.Clear()
	a.game.Menu().Render(a.batch)
	a.batch.Flush(s)
	s.Show()
}

// handle routes one terminal event
func (a *App) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		if s := a.Screen(); s != nil {
			s.Sync()
		}
		a.game.Menu().UpdateLayout(w, h)
		return
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			a.requestExit()
			return
		}
	}
	if uev, ok := a.translator.FromTcell(ev); ok {
		a.game.Menu().OnUIEvent(uev)
	}
}

// Close releases the game and stops the services in reverse order
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if a.stopSignals != nil {
		a.stopSignals()
	}
	if a.removeSink != nil {
		a.removeSink()
	}
	if a.game != nil {
		a.game.Release()
	}
	err := a.hub.StopAll()
	if a.game != nil {
		a.log.Log("Stopped after %d frames", a.frames.Load())
	}
	return errors.Join(err, a.logOut.Close())
}
