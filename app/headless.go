package app

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/gamesvc-samples/crash"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// readLines delivers r line by line; the channel closes at EOF
func readLines(r io.Reader) <-chan string {
	ch := make(chan string, 16)
	crash.Go(func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	})
	return ch
}
