// Package logging builds the zap logger used by the CLI, the driver and the
// watcher. Core compiler packages never log.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// Options select the console destinations and verbosity.
type Options struct {
	Level string
	// Out receives debug and info entries, Err receives warnings and errors.
	Out io.Writer
	Err io.Writer
	// Color forces coloured levels on or off; nil detects a terminal.
	Color *bool
}

// New returns the console logger: low priority entries to Out, warnings and
// above to Err, nothing at all for LevelNone.
func New(opts Options) (*zap.Logger, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	var minLevel zapcore.Level
	switch opts.Level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		minLevel = zapcore.InfoLevel
	case LevelDebug:
		minLevel = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", opts.Level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.WarnLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(opts.colorFor(opts.Out)), zapcore.Lock(zapcore.AddSync(opts.Out)), lowPriority),
		zapcore.NewCore(newEncoder(opts.colorFor(opts.Err)), zapcore.Lock(zapcore.AddSync(opts.Err)), highPriority),
	)
	return zap.New(core).Named("ddd"), nil
}

func (o Options) colorFor(w io.Writer) bool {
	if o.Color != nil {
		return *o.Color
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

func newEncoder(color bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return consoleEnc{zapcore.NewConsoleEncoder(ec)}
}

// consoleEnc prints errors without their verbose form; stack-carrying errors
// would otherwise flood the console.
type consoleEnc struct {
	zapcore.Encoder
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
