// Package debug writes an optional diagnostic log.
//
// Logging is off unless PNGME_DEBUG_LOG names a file; each line carries the
// calling package, file, line and function. PNGME_DEBUG_FUNCS takes a
// comma-separated list of function name patterns (e.g. "container.*") whose
// messages are also echoed to stderr.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

var opts struct {
	mu        sync.Mutex
	isEnabled bool
	logger    *log.Logger
	funcs     []string
	stderr    io.Writer
}

// make sure that all the initialization happens before the init() functions
// are called
var _ = initDebug()

func initDebug() bool {
	opts.stderr = os.Stderr
	initDebugLogger()
	initDebugFuncs()

	opts.isEnabled = opts.logger != nil || len(opts.funcs) > 0
	return opts.isEnabled
}

func initDebugLogger() {
	debugfile := os.Getenv("PNGME_DEBUG_LOG")
	if debugfile == "" {
		return
	}

	f, err := os.OpenFile(debugfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open debug log file: %v\n", err)
		return
	}

	opts.logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
}

func initDebugFuncs() {
	env := os.Getenv("PNGME_DEBUG_FUNCS")
	if env == "" {
		return
	}

	for _, pattern := range strings.Split(env, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			fmt.Fprintf(os.Stderr, "invalid debug pattern %q: %v\n", pattern, err)
			continue
		}
		opts.funcs = append(opts.funcs, pattern)
	}
}

// Enabled reports whether Log writes anything.
func Enabled() bool {
	opts.mu.Lock()
	defer opts.mu.Unlock()
	return opts.isEnabled
}

// SetOutput sends the debug log to w, enabling it. A nil w disables logging
// again, unless PNGME_DEBUG_FUNCS is set.
func SetOutput(w io.Writer) {
	opts.mu.Lock()
	defer opts.mu.Unlock()

	if w == nil {
		opts.logger = nil
	} else {
		opts.logger = log.New(w, "", 0)
	}
	opts.isEnabled = opts.logger != nil || len(opts.funcs) > 0
}

func position() (fn, pos string) {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "", ""
	}

	dirname, filename := filepath.Base(filepath.Dir(file)), filepath.Base(file)
	if f := runtime.FuncForPC(pc); f != nil {
		fn = path.Base(f.Name())
	}
	return fn, fmt.Sprintf("%s/%s:%d", dirname, filename, line)
}

func matchFunc(fn string) bool {
	for _, pattern := range opts.funcs {
		if pattern == "all" {
			return true
		}
		if m, _ := path.Match(pattern, fn); m {
			return true
		}
	}
	return false
}

// Log prints a message to the debug log (if debug is enabled).
func Log(f string, args ...interface{}) {
	opts.mu.Lock()
	defer opts.mu.Unlock()

	if !opts.isEnabled {
		return
	}

	fn, pos := position()
	if len(f) == 0 || f[len(f)-1] != '\n' {
		f += "\n"
	}
	formatString := fmt.Sprintf("%s\t%s\t%s", pos, fn, f)

	if opts.logger != nil {
		opts.logger.Printf(formatString, args...)
	}
	if matchFunc(fn) {
		fmt.Fprintf(opts.stderr, formatString, args...)
	}
}
