//go:build !unix

package app

import "os"

var exitSignals = []os.Signal{os.Interrupt}
