// Command gamesvc-sample runs one of the game-services samples: the store,
// lobbies or sessions demo, against the local backend or a remote one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/gamesvc-samples/app"
	"github.com/lixenwraith/gamesvc-samples/config"
	"github.com/lixenwraith/gamesvc-samples/crash"
)

func main() {
	// Terminal is restored before the trace is printed
	defer crash.Recover()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if !cfg.Headless && !app.IsTerminal(os.Stdout) {
		cfg.Headless = true
	}

	a, err := app.New(cfg, app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	if err := a.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "gamesvc-sample: %v\n", err)
		os.Exit(1)
	}
}
