package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ANSI colour codes for terminal output
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects log lines and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func ts() string {
	return time.Now().Format("15:04:05")
}

// Extraction workers log from several goroutines; one line per write.
func logf(colour, level, format string, a ...interface{}) {
	line := fmt.Sprintf("%s[%s] %s %s%s\n", colour, ts(), level, fmt.Sprintf(format, a...), reset)
	mu.Lock()
	defer mu.Unlock()
	io.WriteString(out, line)
}

func Info(format string, a ...interface{}) {
	logf(blue, "[INFO] ", format, a...)
}

func Success(format string, a ...interface{}) {
	logf(green, "[OK]   ", format, a...)
}

func Warn(format string, a ...interface{}) {
	logf(yellow, "[WARN] ", format, a...)
}

func Error(format string, a ...interface{}) {
	logf(red, "[ERROR]", format, a...)
}

func Section(title string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "\n%s[%s] ══════════ %s ══════════%s\n\n", cyan, ts(), title, reset)
}
