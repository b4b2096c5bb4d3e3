package app

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/crash"
)

// ScreenFactory creates the tcell screen; tests pass tcell.NewSimulationScreen
type ScreenFactory func() (tcell.Screen, error)

// DefaultScreen creates a screen on the controlling terminal
func DefaultScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// Screen owns the terminal and forwards its input events to the frame loop
type Screen struct {
	factory   ScreenFactory
	colorMode string

	screen  tcell.Screen
	eventCh chan tcell.Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewScreen creates the screen service; colorMode is auto, truecolor or 256
func NewScreen(factory ScreenFactory, colorMode string) *Screen {
	if factory == nil {
		factory = DefaultScreen
	}
	return &Screen{
		factory:   factory,
		colorMode: colorMode,
		eventCh:   make(chan tcell.Event, 256),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (s *Screen) Name() string           { return "screen" }
func (s *Screen) Dependencies() []string { return nil }

// Init creates the screen and registers it for crash recovery
func (s *Screen) Init(...any) error {
	if s.screen != nil {
		return nil
	}
	switch s.colorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	}

	scr, err := s.factory()
	if err != nil {
		return fmt.Errorf("screen create: %w", err)
	}
	if scr == nil {
		return errors.New("screen create: no screen")
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	scr.EnableMouse()
	scr.HideCursor()
	scr.Clear()

	s.screen = scr
	crash.SetScreen(scr)
	return nil
}

// Start launches input polling
func (s *Screen) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.screen == nil {
		return errors.New("screen: Start before Init")
	}
	s.running = true
	scr := s.screen
	crash.Go(func() { s.pollLoop(scr) })
	return nil
}

// pollLoop reads input until the screen is finalized
func (s *Screen) pollLoop(scr tcell.Screen) {
	defer close(s.doneCh)
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Stop finalizes the screen, which unblocks PollEvent, and restores the terminal
func (s *Screen) Stop() error {
	s.mu.Lock()
	running := s.running
	s.running = false
	scr := s.screen
	s.screen = nil
	s.mu.Unlock()

	if scr == nil {
		return nil
	}
	if running {
		close(s.stopCh)
	}
	scr.Fini()
	if running {
		<-s.doneCh
	}
	crash.SetScreen(nil)
	return nil
}

// Screen returns the tcell screen, nil after Stop
func (s *Screen) Screen() tcell.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Events returns the input event channel
func (s *Screen) Events() <-chan tcell.Event {
	return s.eventCh
}
