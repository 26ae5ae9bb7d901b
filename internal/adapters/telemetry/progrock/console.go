package progrock

import (
	"bytes"
	"strings"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/dmc/internal/core/ports"
)

var _ progrock.Writer = (*Console)(nil)

type streamKey struct {
	vertex string
	stream progrock.LogStream
}

// Console is a progrock.Writer that renders step updates through the logger at debug level.
// A step is forgotten once it completes.
type Console struct {
	logger ports.Logger

	mu      sync.Mutex
	names   map[string]string
	partial map[streamKey][]byte
}

// NewConsole creates a Console logging to logger.
func NewConsole(logger ports.Logger) *Console {
	return &Console{
		logger:  logger,
		names:   make(map[string]string),
		partial: make(map[streamKey][]byte),
	}
}

// WriteStatus renders the output lines and completions carried by update.
func (c *Console) WriteStatus(update *progrock.StatusUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range update.Vertexes {
		c.names[v.Id] = v.Name
	}
	for _, l := range update.Logs {
		c.write(l)
	}
	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		c.flush(v.Id)
		c.complete(v)
		delete(c.names, v.Id)
	}
	return nil
}

// Close emits any unterminated output lines.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, buf := range c.partial {
		c.line(key, buf)
	}
	clear(c.partial)
	return nil
}

func (c *Console) write(l *progrock.VertexLog) {
	key := streamKey{vertex: l.Vertex, stream: l.Stream}
	buf := append(c.partial[key], l.Data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		c.line(key, buf[:i])
		buf = buf[i+1:]
	}
	if len(buf) == 0 {
		delete(c.partial, key)
		return
	}
	c.partial[key] = bytes.Clone(buf)
}

func (c *Console) flush(vertex string) {
	for _, stream := range []progrock.LogStream{progrock.LogStream_STDOUT, progrock.LogStream_STDERR} {
		key := streamKey{vertex: vertex, stream: stream}
		if buf, ok := c.partial[key]; ok {
			c.line(key, buf)
			delete(c.partial, key)
		}
	}
}

func (c *Console) line(key streamKey, raw []byte) {
	msg := strings.TrimSuffix(string(raw), "\r")
	if msg == "" {
		return
	}
	stream := "stdout"
	if key.stream == progrock.LogStream_STDERR {
		stream = "stderr"
	}
	c.logger.Debug(msg, "step", c.name(key.vertex), "stream", stream)
}

func (c *Console) complete(v *progrock.Vertex) {
	attrs := []any{"step", v.Name}
	if v.Started != nil {
		attrs = append(attrs, "duration", v.Completed.AsTime().Sub(v.Started.AsTime()))
	}

	switch {
	case v.Error != nil:
		c.logger.Debug("step failed", append(attrs, "error", *v.Error)...)
	case v.Cached:
		c.logger.Debug("step cached", attrs...)
	default:
		c.logger.Debug("step done", attrs...)
	}
}

func (c *Console) name(id string) string {
	if name, ok := c.names[id]; ok {
		return name
	}
	return id
}
