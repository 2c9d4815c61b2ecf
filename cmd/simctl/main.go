// Command simctl prints deterministic simulation output without running the
// server: dashboard curves, stage timelines and synthetic samples.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("simctl failed")
		os.Exit(1)
	}
}
