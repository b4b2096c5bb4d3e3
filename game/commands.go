package game

import (
	"strconv"
	"strings"

	"github.com/lixenwraith/gamesvc-samples/config"
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/lobby"
	"github.com/lixenwraith/gamesvc-samples/menu"
	"github.com/lixenwraith/gamesvc-samples/session"
)

// createConsoleCommands registers the commands shared by every sample, then
// those of the configured sample
func (g *Game) createConsoleCommands() {
	c := g.console
	c.AppendHelp(
		" LOGIN <id> <token> [password|devtoken] - to log a user in;",
		" LOGINEXTERNAL - to log in with an external platform ticket;",
		" MFA <code> - to finish a login that asked for a second factor;",
		" LOGOUT - to log the current user out;",
		" NEWUSER, CANCELLOGIN - to start or abort a login for another user;",
		" PREVUSER, NEXTUSER, USERS - to switch and list logged-in users;",
		" NOTIFY - to toggle the notification dialog;",
		" STATS - to print runtime counters;",
		" EMIT <EventName> [text] - to broadcast a game event;",
		" QUIT - to exit;",
	)
	c.AddCommand("LOGIN", g.cmdLogin)
	c.AddCommand("LOGINEXTERNAL", g.cmdLoginExternal)
	c.AddCommand("MFA", g.cmdMFA)
	c.AddCommand("LOGOUT", g.cmdLogout)
	c.AddCommand("NEWUSER", g.emitter(event.EventNewUserLogin))
	c.AddCommand("CANCELLOGIN", g.emitter(event.EventCancelLogin))
	c.AddCommand("PREVUSER", g.emitter(event.EventShowPrevUser))
	c.AddCommand("NEXTUSER", g.emitter(event.EventShowNextUser))
	c.AddCommand("USERS", g.cmdUsers)
	c.AddCommand("NOTIFY", g.emitter(event.EventToggleNotification))
	c.AddCommand("STATS", g.cmdStats)
	c.AddCommand("EMIT", g.cmdEmit)
	c.AddCommand("QUIT", g.cmdQuit)

	switch g.ctx.Config.Sample {
	case config.SampleStore:
		c.AppendHelp(
			" OFFERS - to list the catalog of the current user;",
			" ENTITLEMENTS - to list what the current user owns;",
			" CHECKOUT <offer id> - to buy an offer;",
		)
		c.AddCommand("OFFERS", g.cmdOffers)
		c.AddCommand("ENTITLEMENTS", g.cmdEntitlements)
		c.AddCommand("CHECKOUT", g.cmdCheckout)
	case config.SampleLobbies:
		c.AppendHelp(
			" CURRENTLOBBY - to print out current lobby info;",
			" FINDLOBBY - to perform a lobby search;",
			" CREATELOBBY [max members] - to create a lobby;",
			" JOINLOBBY <lobby id> - to join a lobby;",
			" LEAVELOBBY - to leave the current lobby;",
			" ACCEPTINVITE - to join the lobby of the oldest invite;",
		)
		c.AddCommand("CURRENTLOBBY", g.cmdCurrentLobby)
		c.AddCommand("FINDLOBBY", g.cmdFindLobby)
		c.AddCommand("CREATELOBBY", g.cmdCreateLobby)
		c.AddCommand("JOINLOBBY", g.cmdJoinLobby)
		c.AddCommand("LEAVELOBBY", g.cmdLeaveLobby)
		c.AddCommand("ACCEPTINVITE", g.cmdAcceptInvite)
	case config.SampleSessions:
		c.AppendHelp(
			" SESSIONS - to list local sessions;",
			" FINDSESSION <session id> - to perform a session search;",
			" CREATESESSION <name> [level] - to create a session;",
			" JOINSESSION <session id> - to join a session from the last search;",
			" DESTROYSESSION <name> - to destroy a local session;",
		)
		c.AddCommand("SESSIONS", g.cmdSessions)
		c.AddCommand("FINDSESSION", g.cmdFindSession)
		c.AddCommand("CREATESESSION", g.cmdCreateSession)
		c.AddCommand("JOINSESSION", g.cmdJoinSession)
		c.AddCommand("DESTROYSESSION", g.cmdDestroySession)
	}
}

func (g *Game) emit(ev event.Event) {
	g.ctx.Bus.Emit(ev)
}

// emitter returns a handler broadcasting a bare event of type t
func (g *Game) emitter(t event.Type) func([]string) {
	return func([]string) {
		g.emit(event.New(t))
	}
}

// requirePlatform logs and returns false when the platform is not usable
func (g *Game) requirePlatform() bool {
	if g.ctx.Platform == nil || !g.ctx.Platform.IsInitialized() {
		g.log.LogError("EOS SDK is not initialized!")
		return false
	}
	return true
}

func (g *Game) requireLobbies() bool {
	if !g.requirePlatform() {
		return false
	}
	if g.lobbies == nil {
		g.log.LogError("EOS SDK Lobbies are not initialized!")
		return false
	}
	return true
}

func (g *Game) requireSessions() bool {
	if !g.requirePlatform() {
		return false
	}
	if g.sessions == nil {
		g.log.LogError("EOS SDK Sessions are not initialized!")
		return false
	}
	return true
}

func (g *Game) requireStore() bool {
	if !g.requirePlatform() {
		return false
	}
	if g.store == nil {
		g.log.LogError("EOS SDK Ecom is not initialized!")
		return false
	}
	return true
}

// === Account ===

func (g *Game) cmdLogin(args []string) {
	if !g.requirePlatform() {
		return
	}
	if len(args) < 2 || len(args) > 3 {
		g.log.LogError("Usage: LOGIN <id> <token> [password|devtoken]")
		return
	}
	mode := event.LoginPassword
	if len(args) == 3 {
		switch strings.ToLower(args[2]) {
		case "password":
		case "devtoken":
			mode = event.LoginDevToken
		default:
			g.log.LogError("Unknown login type: %s", args[2])
			return
		}
	}
	g.emit(event.NewText(event.EventStartUserLogin, args[0], args[1], int(mode)))
}

func (g *Game) cmdLoginExternal([]string) {
	if !g.requirePlatform() {
		return
	}
	if g.external == nil {
		g.log.LogError("External auth is not available.")
		return
	}
	g.external.StartLogin()
}

func (g *Game) cmdMFA(args []string) {
	if len(args) != 1 {
		g.log.LogError("MFA code is required as the only argument.")
		return
	}
	g.emit(event.NewText(event.EventUserLoginEnteredMFA, "", args[0]))
}

func (g *Game) cmdLogout([]string) {
	if !g.requirePlatform() {
		return
	}
	user := g.players.Current()
	if user == "" {
		g.log.LogError("No user logged in.")
		return
	}
	g.emit(event.NewUser(event.EventUserLogOutTriggered, string(user)))
}

func (g *Game) cmdUsers([]string) {
	players := g.players.All()
	if len(players) == 0 {
		g.log.Log("No users logged in.")
		return
	}
	current := g.players.Current()
	for _, p := range players {
		marker := " "
		if p.ID == current {
			marker = "*"
		}
		g.log.Log("%s %s (%s)", marker, p.DisplayName, p.ID)
	}
}

// === Store ===

func (g *Game) cmdOffers([]string) {
	if !g.requireStore() {
		return
	}
	if g.store.User() == "" {
		g.log.LogError("No user logged in.")
		return
	}
	offers := g.store.Offers()
	if len(offers) == 0 {
		g.log.Log("No offers.")
		return
	}
	for _, o := range offers {
		price := "price unavailable"
		if o.PriceValid {
			price = menu.FormatPrice(o.CurrentPrice, o.Currency)
		}
		g.log.Log("%s: %s, %s", o.ID, o.Title, price)
	}
}

func (g *Game) cmdEntitlements([]string) {
	if !g.requireStore() {
		return
	}
	ents := g.store.Entitlements()
	if len(ents) == 0 {
		g.log.Log("No entitlements.")
		return
	}
	for _, e := range ents {
		g.log.Log("%s: %s", e.ID, e.Name)
	}
}

func (g *Game) cmdCheckout(args []string) {
	if !g.requireStore() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Offer id is required as the only argument.")
		return
	}
	g.emit(event.NewText(event.EventCheckoutRequested, string(g.store.User()), args[0]))
}

// === Lobbies ===

func (g *Game) cmdCurrentLobby([]string) {
	if !g.requireLobbies() {
		return
	}
	if l, ok := g.lobbies.CurrentLobby(); ok {
		g.log.Log("Current lobby id: %s", l.ID)
	} else {
		g.log.LogError("No current lobby.")
	}
}

func (g *Game) cmdFindLobby(args []string) {
	if !g.requireLobbies() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Lobby id is required as the only argument.")
		return
	}
	g.lobbies.Search(args[0], 1)
}

func (g *Game) cmdCreateLobby(args []string) {
	if !g.requireLobbies() {
		return
	}
	maxMembers := lobby.DefaultMaxMembers
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			g.log.LogError("Max members must be a positive number.")
			return
		}
		maxMembers = n
	}
	g.lobbies.CreateLobby(maxMembers)
}

func (g *Game) cmdJoinLobby(args []string) {
	if !g.requireLobbies() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Lobby id is required as the only argument.")
		return
	}
	g.lobbies.JoinLobby(args[0])
}

func (g *Game) cmdLeaveLobby([]string) {
	if !g.requireLobbies() {
		return
	}
	g.lobbies.LeaveLobby()
}

func (g *Game) cmdAcceptInvite([]string) {
	if !g.requireLobbies() {
		return
	}
	g.lobbies.AcceptInvite()
}

// === Sessions ===

func (g *Game) cmdSessions([]string) {
	if !g.requireSessions() {
		return
	}
	local := g.sessions.LocalSessions()
	if len(local) == 0 {
		g.log.Log("No local sessions.")
		return
	}
	for _, s := range local {
		g.log.Log("%s", menu.DescribeSession(s))
	}
}

func (g *Game) cmdFindSession(args []string) {
	if !g.requireSessions() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Session id is required as the only argument.")
		return
	}
	g.sessions.Search(args[0], session.DefaultSearchResults)
}

func (g *Game) cmdCreateSession(args []string) {
	if !g.requireSessions() {
		return
	}
	if len(args) < 1 || len(args) > 2 {
		g.log.LogError("Usage: CREATESESSION <name> [level]")
		return
	}
	level := ""
	if len(args) == 2 {
		level = args[1]
	}
	presence := !g.sessions.HasPresenceSession()
	g.sessions.CreateSession(args[0], level, session.DefaultMaxPlayers, presence)
}

func (g *Game) cmdJoinSession(args []string) {
	if !g.requireSessions() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Session id is required as the only argument.")
		return
	}
	for _, s := range g.sessions.SearchResults() {
		if s.ID == args[0] {
			g.sessions.JoinSession(s.Handle, !g.sessions.HasPresenceSession())
			return
		}
	}
	g.log.LogError("Session %s is not in the search results; run FINDSESSION first.", args[0])
}

func (g *Game) cmdDestroySession(args []string) {
	if !g.requireSessions() {
		return
	}
	if len(args) != 1 {
		g.log.LogError("Session name is required as the only argument.")
		return
	}
	g.sessions.DestroySession(args[0])
}

// === Diagnostics ===

func (g *Game) cmdStats([]string) {
	for _, line := range g.ctx.Status.Lines() {
		g.log.Log("%s", line)
	}
}

func (g *Game) cmdEmit(args []string) {
	if len(args) == 0 {
		g.log.LogError("Event name is required.")
		return
	}
	t, ok := event.Parse(args[0])
	if !ok {
		g.log.LogError("Unknown event: %s", args[0])
		return
	}
	text := strings.Join(args[1:], " ")
	g.emit(event.NewText(t, string(g.players.Current()), text))
}

func (g *Game) cmdQuit([]string) {
	g.emit(event.NewText(event.EventExitRequested, "", "", 1))
}
