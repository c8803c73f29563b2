// Command phasekit analyzes the dominant frequency components of a signal
// and their phase relationships, printing the numeric result as JSON.
package main

import (
	"os"

	"github.com/tmorlan/phasekit/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.GetGlobalLogger().Error(err, "analysis failed")
		os.Exit(1)
	}
}
