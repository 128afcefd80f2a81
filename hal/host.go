//go:build !tinygo

package hal

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	wheel  *WheelBus
	serial Serial
	opts   Options
}

// New returns a host HAL implementation logging to stderr and reading stdin.
func New(opts Options) HAL {
	return newHostHAL(opts, slog.New(slog.NewTextHandler(os.Stderr, nil)), &hostSerial{r: os.Stdin, w: os.Stdout})
}

// NewWithIO returns a host HAL whose logger and serial port use the given streams.
func NewWithIO(opts Options, log *slog.Logger, in io.Reader, out io.Writer) HAL {
	return newHostHAL(opts, log, &hostSerial{r: in, w: out})
}

func newHostHAL(opts Options, log *slog.Logger, serial Serial) *hostHAL {
	opts = opts.withDefaults()
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &hostHAL{
		logger: &hostLogger{log: log},
		fb:     newHostFramebuffer(opts.Width, opts.Height),
		wheel:  NewWheelBus(),
		serial: serial,
		opts:   opts,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{wheel: h.wheel} }
func (h *hostHAL) Serial() Serial   { return h.serial }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	wheel *WheelBus
}

func (in hostInput) Wheel() Wheel { return in.wheel }

type hostLogger struct {
	mu  sync.Mutex
	log *slog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Info(strings.TrimRight(s, "\n"))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}
