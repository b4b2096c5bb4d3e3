// Package game assembles one sample: the console, the menu, the account flow
// and the domain facade the configured sample needs. It is driven by the
// frame loop through Create, Update, OnGameEvent, OnShutdown and
// IsShutdownDelayed.
package game

import (
	"time"

	"github.com/lixenwraith/gamesvc-samples/account"
	"github.com/lixenwraith/gamesvc-samples/clock"
	"github.com/lixenwraith/gamesvc-samples/config"
	"github.com/lixenwraith/gamesvc-samples/console"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/lobby"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/menu"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/session"
	"github.com/lixenwraith/gamesvc-samples/status"
	"github.com/lixenwraith/gamesvc-samples/store"
)

// MaxTimeToShutdown bounds the wait for lobbies and sessions after OnShutdown
const MaxTimeToShutdown = 7 * time.Second

// Context is everything a Game needs from the process
type Context struct {
	Log      logging.Logger
	Bus      *event.Bus
	Platform sdk.Platform
	Clock    clock.Provider
	Config   config.Config
	Status   *status.Registry
	// Margin is passed to the menu layout; zero keeps menu.DefaultMargin
	Margin float64
}

// Game owns every component of one sample
type Game struct {
	ctx Context
	log logging.Logger

	console  *console.Console
	menu     *menu.Menu
	players  *account.Players
	auth     *account.Authentication
	external *account.ExternalAuth

	store    *store.Store
	lobbies  *lobby.Lobbies
	sessions *session.Matchmaking

	created       bool
	exitRequested bool
	shuttingDown  bool
	shutdownAt    time.Time
	shutdownLimit time.Duration
}

// New builds the components for ctx.Config.Sample and registers console commands
// Subsystems the platform does not provide are left out; their commands report it
func New(ctx Context) *Game {
	if ctx.Log == nil {
		ctx.Log = logging.Nop()
	}
	if ctx.Clock == nil {
		ctx.Clock = clock.NewReal()
	}
	if ctx.Status == nil {
		ctx.Status = status.NewRegistry()
	}
	if ctx.Bus == nil {
		ctx.Bus = event.NewBus(ctx.Status)
	}

	g := &Game{
		ctx:           ctx,
		log:           ctx.Log,
		console:       console.New(ctx.Log),
		players:       account.NewPlayers(),
		shutdownLimit: ctx.Config.ShutdownTimeout.Duration,
	}
	if g.shutdownLimit <= 0 {
		g.shutdownLimit = MaxTimeToShutdown
	}

	bus, current, cfg := ctx.Bus, g.players.Current, ctx.Config
	opts := menu.Options{
		Console: g.console,
		Bus:     bus,
		Players: g.players,
		Margin:  ctx.Margin,
	}

	if p := ctx.Platform; p != nil {
		if auth := p.Auth(); auth != nil {
			g.auth = account.NewAuthentication(auth, bus, current, ctx.Log)
		}
		userInfo := func(id sdk.AccountID) (sdk.UserInfo, bool) {
			if g.auth == nil {
				return sdk.UserInfo{}, false
			}
			return g.auth.UserInfo(id)
		}
		if tickets := p.Tickets(); tickets != nil {
			g.external = account.NewExternalAuth(tickets, bus, userInfo, ctx.Log)
		}

		switch cfg.Sample {
		case config.SampleStore:
			if ecom := p.Ecom(); ecom != nil {
				g.store = store.New(ecom, bus, current, cfg.Refresh.Store.Duration, ctx.Status, ctx.Log)
				opts.Store = g.store
			}
		case config.SampleLobbies:
			if api := p.Lobbies(); api != nil {
				g.lobbies = lobby.New(api, bus, current, cfg.Refresh.Lobby.Duration, ctx.Status, ctx.Log)
				opts.Lobbies = g.lobbies
			}
		case config.SampleSessions:
			if api := p.Sessions(); api != nil {
				g.sessions = session.New(api, bus, current, cfg.Refresh.Sessions.Duration, ctx.Status, ctx.Log)
				opts.Sessions = g.sessions
			}
		}
	}

	switch cfg.Sample {
	case config.SampleLobbies:
		opts.Sample = menu.SampleLobbies
	case config.SampleSessions:
		opts.Sample = menu.SampleSessions
	default:
		opts.Sample = menu.SampleStore
	}
	g.menu = menu.New(opts)

	g.createConsoleCommands()
	return g
}

// Console returns the command registry
func (g *Game) Console() *console.Console { return g.console }

// Menu returns the widget tree root
func (g *Game) Menu() *menu.Menu { return g.menu }

// Players returns the logged-in users
func (g *Game) Players() *account.Players { return g.players }

// Store returns the store facade, nil outside the store sample
func (g *Game) Store() *store.Store { return g.store }

// Lobbies returns the lobby facade, nil outside the lobbies sample
func (g *Game) Lobbies() *lobby.Lobbies { return g.lobbies }

// Sessions returns the session facade, nil outside the sessions sample
func (g *Game) Sessions() *session.Matchmaking { return g.sessions }

// Create creates the menu and subscribes to platform notifications
func (g *Game) Create() {
	if g.created {
		return
	}
	g.created = true

	g.menu.Create()
	if g.external != nil {
		g.external.Init()
	}
	if g.lobbies != nil {
		g.lobbies.Subscribe()
	}
	if g.sessions != nil {
		g.sessions.SubscribeToGameInvites()
	}
	g.log.Log("Sample %s ready. Type HELP for the list of commands.", g.ctx.Config.Sample)
}

// Update advances the facades and the menu by dt
func (g *Game) Update(dt time.Duration) {
	if g.sessions != nil {
		g.sessions.Update(dt)
	}
	if g.store != nil {
		g.store.Update(dt)
	}
	g.menu.Update(dt)
	if g.lobbies != nil {
		g.lobbies.Update(dt)
	}
}

// OnGameEvent forwards ev to the components in a fixed order:
// players, authentication, external auth, the sample facade, then the menu
func (g *Game) OnGameEvent(ev event.Event) {
	if ev.Type() == event.EventExitRequested && ev.IntOr(0, 0) == 1 {
		g.exitRequested = true
	}

	g.players.OnGameEvent(ev)
	if g.auth != nil {
		g.auth.OnGameEvent(ev)
	}
	if g.external != nil {
		g.external.OnGameEvent(ev)
	}
	if g.store != nil {
		g.store.OnGameEvent(ev)
	}
	if g.lobbies != nil {
		g.lobbies.OnGameEvent(ev)
	}
	if g.sessions != nil {
		g.sessions.OnGameEvent(ev)
	}
	g.menu.OnGameEvent(ev)
}

// ExitRequested reports whether a confirmed exit was requested
func (g *Game) ExitRequested() bool { return g.exitRequested }

// OnShutdown starts the drain: lobbies are left and local sessions destroyed
// before the platform is released; the drain window starts now
func (g *Game) OnShutdown() {
	if g.shuttingDown {
		return
	}
	g.shuttingDown = true

	if g.lobbies != nil {
		g.lobbies.OnShutdown()
	}
	if g.sessions != nil {
		g.sessions.OnShutdown()
	}
	if g.external != nil {
		g.external.Shutdown()
	}

	g.shutdownAt = g.ctx.Clock.Now()
	g.log.Log("Shutting down")
}

// ShuttingDown reports whether OnShutdown ran
func (g *Game) ShuttingDown() bool { return g.shuttingDown }

// IsShutdownDelayed reports whether the loop must keep ticking before the platform
// is released: true while lobby or session requests are still settling, false once
// they are done or the drain window has elapsed
func (g *Game) IsShutdownDelayed() bool {
	if !g.shuttingDown {
		return false
	}
	if g.ctx.Clock.Now().Sub(g.shutdownAt) >= g.shutdownLimit {
		return false
	}
	if g.lobbies != nil && !g.lobbies.IsReadyToShutdown() {
		return true
	}
	if g.sessions != nil && g.sessions.HasActiveLocalSessions() {
		return true
	}
	return false
}

// Release releases the menu
func (g *Game) Release() {
	g.menu.Release()
}
