// Package debug configures the zerolog logger used by the command line.
package debug

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// skipFrameCount reads the frame skip requested on e with CallerSkipFrame.
func skipFrameCount(e *zerolog.Event) int {
	v := reflect.ValueOf(e).Elem()
	field := v.FieldByName("skipFrame")
	if field.IsValid() {
		return int(field.Int())
	}
	return 0
}

// TimeHook stamps each event with the wall clock. The default format has
// millisecond precision.
type TimeHook struct {
	Format string
}

func (t TimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		format = "2006-01-02T15:04:05.0000Z"
	}
	e.Str("time", time.Now().Format(format))
}

// CallerHook stamps each event with "pkg:file.go:line" of the logging call.
type CallerHook struct {
	WithColor bool
}

func (c CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(skipFrameCount(e) + 3)
	if !ok {
		return
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return
	}
	pkg, _ := SplitFuncName(fn.Name())
	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// SplitFuncName splits a runtime function name such as
// "github.com/a/b.(*T).M" into its package path and function.
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := strings.LastIndexByte(name, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}
	firstDot := strings.IndexByte(name[lastSlash:], '.')
	if firstDot < 0 {
		return name, ""
	}
	firstDot += lastSlash

	pkg = name[:firstDot]
	function = name[firstDot+1:]

	if strings.Contains(pkg, ".(") {
		parts := strings.SplitN(pkg, ".(", 2)
		pkg = parts[0]
		function = "(" + parts[1] + "." + function
	}
	return pkg, function
}

func FormatCaller(pkg, path string, line int, colorize bool) string {
	file := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		file = path[i+1:]
	}
	if colorize {
		file = color.New(color.Bold).Sprint(file)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
		sep := color.New(color.Faint).Sprint(":")
		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, file, sep, num)
	}
	return fmt.Sprintf("%s:%s:%d", pkg, file, line)
}

type LoggerOptions struct {
	Level zerolog.Level
	// Console writes human readable lines instead of JSON.
	Console bool
	Color   bool
	RunID   string
}

// NewLogger builds a logger writing to w with the time and caller hooks.
func NewLogger(w io.Writer, opts LoggerOptions) zerolog.Logger {
	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: !opts.Color, PartsExclude: []string{zerolog.TimestampFieldName}}
	}
	ctx := zerolog.New(w).Level(opts.Level).With()
	if opts.RunID != "" {
		ctx = ctx.Str("run", opts.RunID)
	}
	return ctx.Logger().
		Hook(TimeHook{}).
		Hook(CallerHook{WithColor: opts.Color})
}
