package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"wheelmon/hal"
)

// parseWheelLine reads "<dy>" or "<dx> <dy>". Blank lines and # comments
// report ok=false.
func parseWheelLine(line string) (ev hal.WheelEvent, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return hal.WheelEvent{}, false, nil
	case 1:
		dy, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return hal.WheelEvent{}, false, err
		}
		return hal.WheelEvent{DeltaY: dy}, true, nil
	case 2:
		dx, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return hal.WheelEvent{}, false, err
		}
		dy, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return hal.WheelEvent{}, false, err
		}
		return hal.WheelEvent{DeltaX: dx, DeltaY: dy}, true, nil
	default:
		return hal.WheelEvent{}, false, fmt.Errorf("want 1 or 2 numbers, got %d fields", len(fields))
	}
}

func formatWheelLine(ev hal.WheelEvent) string {
	return strconv.FormatFloat(ev.DeltaX, 'g', -1, 64) + " " + strconv.FormatFloat(ev.DeltaY, 'g', -1, 64)
}

// readLines scans r on its own goroutine. The channel closes at EOF.
func readLines(r io.Reader, log hal.Logger) <-chan string {
	ch := make(chan string, 256)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
		if err := sc.Err(); err != nil && log != nil {
			log.WriteLineString("app: stdin: " + err.Error())
		}
	}()
	return ch
}

func loadReplay(path string) ([]hal.WheelEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	var events []hal.WheelEvent
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		ev, ok, err := parseWheelLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("replay %s:%d: %w", path, n, err)
		}
		if ok {
			events = append(events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return events, nil
}

// recorder appends every wheel event to a file in replay format.
type recorder struct {
	mu  sync.Mutex
	f   *os.File
	w   *bufio.Writer
	sub hal.Subscription
	err error
}

func startRecorder(path string, wheel hal.Wheel) (*recorder, error) {
	if wheel == nil {
		return nil, fmt.Errorf("record: no wheel input")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	r := &recorder{f: f, w: bufio.NewWriter(f)}
	r.sub = wheel.Subscribe(r.write)
	return r, nil
}

func (r *recorder) write(ev hal.WheelEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if _, err := r.w.WriteString(formatWheelLine(ev) + "\n"); err != nil {
		r.err = err
	}
}

func (r *recorder) Close() error {
	r.sub.Unsubscribe()
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.f.Close(); err != nil && r.err == nil {
		r.err = err
	}
	if r.err != nil {
		return fmt.Errorf("record: %w", r.err)
	}
	return nil
}
