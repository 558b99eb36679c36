/*
Package csi queries the controlling terminal with CSI escape sequences
*/
package csi

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// QueryTimeout is the default timeout for CSI queries
const QueryTimeout = 100 * time.Millisecond

var (
	cellOnce   sync.Once
	cellWidth  int
	cellHeight int
	cellOK     bool
)

// CellSize returns the character cell size in pixels. The terminal is asked
// once per process; later calls return the cached answer.
func CellSize() (width, height int, ok bool) {
	cellOnce.Do(func() {
		if !QuerySupported() {
			return
		}
		cellWidth, cellHeight, cellOK = QueryCharacterCellSizeInPixels()
	})
	return cellWidth, cellHeight, cellOK
}

// QueryCharacterCellSizeInPixels queries character cell size in pixels using CSI 16t
// returns: width and height in pixels per character, or 0,0,false if query fails
func QueryCharacterCellSizeInPixels() (width, height int, ok bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(WrapTmuxPassthrough("\x1b[16t")); err != nil {
		return 0, 0, false
	}

	responseChan := make(chan [2]int, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err != nil || n == 0 {
			responseChan <- [2]int{0, 0}
			return
		}
		w, h, _ := ParseCellSizeResponse(string(buf[:n]))
		responseChan <- [2]int{w, h}
	}()

	select {
	case result := <-responseChan:
		return result[0], result[1], result[0] > 0 && result[1] > 0
	case <-time.After(QueryTimeout):
		return 0, 0, false
	}
}

// ParseCellSizeResponse parses a CSI 16t reply of the form ESC [ 6 ; height ; width t
func ParseCellSizeResponse(response string) (width, height int, ok bool) {
	start := strings.Index(response, "[6;")
	if start == -1 {
		return 0, 0, false
	}
	remaining := response[start+3:]

	end := strings.IndexByte(remaining, 't')
	if end == -1 {
		return 0, 0, false
	}

	parts := strings.Split(remaining[:end], ";")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(parts[1])
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// QuerySupported checks if a terminal likely supports CSI queries
// This is a heuristic based on terminal type and environment
func QuerySupported() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal", "vscode":
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// InTmux checks if running inside tmux
func InTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// WrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed
func WrapTmuxPassthrough(output string) string {
	if !InTmux() || !strings.HasPrefix(output, "\x1b") {
		return output
	}
	// tmux passthrough format: \ePtmux;{sequence with every ESC doubled}\e\\
	return "\x1bPtmux;" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
}
