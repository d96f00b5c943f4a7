package main

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// setupLog configures the global logger. Output goes to stderr so
// subtitle and report output on stdout stays clean; VOXSCRIPT_DEBUG
// raises the level and VOXSCRIPT_LOGFILE redirects to a file.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetTimeFormat(time.Kitchen)
	log.SetLevel(log.InfoLevel)

	if ok, _ := strconv.ParseBool(os.Getenv("VOXSCRIPT_DEBUG")); ok {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)

		if path := os.Getenv("VOXSCRIPT_LOGFILE"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
			if err != nil {
				return nil, err
			}
			log.SetOutput(f)
			return f.Close, nil
		}
	}

	return func() error { return nil }, nil
}
