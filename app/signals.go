package app

import (
	"os"
	"os/signal"

	"github.com/lixenwraith/gamesvc-samples/crash"
	"github.com/lixenwraith/gamesvc-samples/event"
)

// watchSignals posts a direct exit request to bus for every termination signal
// until the returned stop is called
func watchSignals(bus *event.Bus) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	signal.Notify(sigCh, exitSignals...)

	crash.Go(func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				bus.Post(event.NewText(event.EventExitRequested, "", "", 1))
			}
		}
	})

	return func() {
		signal.Stop(sigCh)
		close(stopCh)
		<-doneCh
	}
}
