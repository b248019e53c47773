package commands

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// startSpinner shows message next to a spinner on stderr. The returned
// function stops it and prints s.FinalMSG if one was set.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	quiet := !cfg.Verbose && !cfg.Debug && term.IsTerminal(int(os.Stderr.Fd()))
	if quiet {
		s.Start()
	} else {
		appCtx.Log.Infof("%s", message)
	}

	return s, func() {
		final := s.FinalMSG
		s.FinalMSG = ""
		if quiet {
			s.Stop()
		}
		if final != "" {
			os.Stderr.WriteString(final + "\n")
		}
	}
}
