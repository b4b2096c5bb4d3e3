package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/gamesvc-samples/clock"
	"github.com/lixenwraith/gamesvc-samples/config"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/sdk/discovery"
	"github.com/lixenwraith/gamesvc-samples/sdk/local"
	"github.com/lixenwraith/gamesvc-samples/sdk/remote"
)

// ErrNoEndpoints is returned when the websocket backend has nothing to dial
var ErrNoEndpoints = errors.New("platform: no backend endpoints configured")

// PlatformService connects the configured game-services backend
// The local backend needs no network and is ready after Init; remote
// backends connect in Start
type PlatformService struct {
	cfg   config.Backend
	clock clock.Provider
	log   logging.Logger

	endpoints []string
	platform  sdk.Platform
}

// NewPlatformService creates the backend service for cfg
func NewPlatformService(cfg config.Backend, clk clock.Provider, log logging.Logger) *PlatformService {
	if clk == nil {
		clk = clock.NewReal()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &PlatformService{cfg: cfg, clock: clk, log: log}
}

// UsePlatform replaces the configured backend with p
func (s *PlatformService) UsePlatform(p sdk.Platform) {
	s.platform = p
}

func (s *PlatformService) Name() string           { return "sdk" }
func (s *PlatformService) Dependencies() []string { return nil }

// Init creates the local backend or resolves the remote endpoints
func (s *PlatformService) Init(...any) error {
	if s.platform != nil {
		return nil
	}
	switch s.cfg.Kind {
	case config.BackendLocal, "":
		s.platform = local.New(local.Options{LatencyTicks: s.cfg.LatencyTicks})
		s.log.Log("Using local backend (latency %d ticks)", s.cfg.LatencyTicks)

	case config.BackendWS:
		s.endpoints = s.cfg.Endpoints
		if len(s.endpoints) == 0 && s.cfg.ConsulAddr != "" {
			found, err := discovery.Endpoints(s.cfg.ConsulAddr, s.cfg.ServiceName, s.log)
			if err != nil {
				return fmt.Errorf("discover %s: %w", s.cfg.ServiceName, err)
			}
			s.endpoints = found
		}
		if len(s.endpoints) == 0 {
			return ErrNoEndpoints
		}

	case config.BackendNATS:
		if s.cfg.NATSURL == "" {
			return errors.New("platform: nats backend needs a server URL")
		}

	default:
		return fmt.Errorf("platform: unknown backend %q", s.cfg.Kind)
	}
	return nil
}

// Start connects a remote backend
func (s *PlatformService) Start() error {
	if s.platform != nil {
		return nil
	}

	var (
		t   remote.Transport
		err error
	)
	switch s.cfg.Kind {
	case config.BackendWS:
		ctx, cancel := context.WithTimeout(context.Background(), s.callTimeout())
		defer cancel()
		var ws *remote.WSTransport
		ws, err = remote.DialWS(ctx, s.endpoints, s.log)
		if err == nil {
			t = ws
			s.log.Log("Connected to %s", ws.Endpoint())
		}
	case config.BackendNATS:
		var nt *remote.NATSTransport
		nt, err = remote.DialNATS(s.cfg.NATSURL, s.log)
		if err == nil {
			t = nt
			s.log.Log("Connected to %s", s.cfg.NATSURL)
		}
	default:
		return fmt.Errorf("platform: unknown backend %q", s.cfg.Kind)
	}
	if err != nil {
		return fmt.Errorf("platform connect: %w", err)
	}

	s.platform = remote.NewClient(t, remote.Options{
		CallTimeout: s.callTimeout(),
		Clock:       s.clock,
		Log:         s.log,
	})
	return nil
}

func (s *PlatformService) callTimeout() time.Duration {
	if d := s.cfg.CallTimeout.Duration; d > 0 {
		return d
	}
	return remote.DefaultCallTimeout
}

// Stop releases the platform
func (s *PlatformService) Stop() error {
	if s.platform != nil {
		s.platform.Release()
	}
	return nil
}

// Platform returns the connected backend, nil before Start for remote kinds
func (s *PlatformService) Platform() sdk.Platform {
	return s.platform
}
