package utils

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/fatih/color"
)

var colors = []color.Attribute{color.FgYellow, color.FgGreen, color.FgRed, color.FgWhite, color.FgMagenta}
var index = -1

var l sync.Mutex

const MaxNameLength = 20

// ColorLogger provides an io.Writer that prefixes every line with a colored
// name, so output of concurrent generations can be told apart.
type ColorLogger struct {
	name   string
	writer io.Writer
	c      *color.Color
}

func NewColorLogger(name string, writer io.Writer, newColor bool) io.Writer {
	l.Lock()
	defer l.Unlock()
	if newColor || index < 0 {
		index = (index + 1) % len(colors)
	}

	if len(name) > MaxNameLength {
		name = name[:MaxNameLength-3] + "..."
	}

	return &ColorLogger{
		name:   name,
		writer: writer,
		c:      color.New(colors[index]),
	}
}

func (c *ColorLogger) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(p))
	scanner.Buffer(make([]byte, 0, 64*1024), len(p)+1)
	for scanner.Scan() {
		buf.WriteString(c.c.Sprint(c.name, " | "))
		buf.Write(scanner.Bytes())
		buf.WriteByte('\n')
	}

	l.Lock()
	defer l.Unlock()
	if _, err := c.writer.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
