package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Serialises writers shared between goroutines, such as fan-out workers.
var mu sync.Mutex

type Logger struct {
	Verbose bool
	Debug   bool
	Out     io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.printf(color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(color.YellowString("[warn] "), msg, args...)
	}
}

func (l Logger) Errorf(msg string, args ...any) {
	l.printf(color.RedString("[error] "), msg, args...)
}

func (l Logger) printf(prefix, msg string, args ...any) {
	w := l.Out
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}
