//go:build unix

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

var exitSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}
