// Package statsd emits DogStatsD-style metrics over UDP.
package statsd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// defaultMaxPacket keeps a datagram under a typical Ethernet MTU.
	defaultMaxPacket     = 1432
	defaultFlushInterval = time.Second
	defaultDialTimeout   = 5 * time.Second
)

// Sink describes the minimal interface required to emit StatsD-style metrics.
type Sink interface {
	Count(name string, value int64, tags map[string]string)
	Gauge(name string, value float64, tags map[string]string)
	Timing(name string, value time.Duration, tags map[string]string)
}

// Config describes how to connect to a StatsD-compatible sink.
type Config struct {
	Enabled    bool
	Address    string
	Prefix     string
	Logger     *slog.Logger
	GlobalTags map[string]string

	DialTimeout time.Duration // default 5s
	// MaxPacketSize caps one datagram; lines are packed newline-separated up to it.
	MaxPacketSize int
	// FlushInterval bounds how long a partly filled packet waits. Default 1s.
	FlushInterval time.Duration
}

// Client packs metric lines into UDP datagrams. Executor workers emit several
// metrics per job, so lines are buffered and sent when a packet fills up, on
// every FlushInterval, and on Close. Safe for concurrent use. A nil or
// disabled Client drops every metric.
type Client struct {
	prefix    string
	tagSuffix map[string]string
	maxPacket int
	logger    *slog.Logger

	mu   sync.Mutex
	conn net.Conn
	buf  []byte

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

var _ Sink = (*Client)(nil)

// NewClient dials the configured endpoint unless disabled and starts the flush loop.
func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		prefix:    sanitizePrefix(cfg.Prefix),
		tagSuffix: cloneTags(cfg.GlobalTags),
		maxPacket: cfg.MaxPacketSize,
		logger:    logger.With("component", "statsd"),
	}
	if c.maxPacket <= 0 {
		c.maxPacket = defaultMaxPacket
	}

	address := strings.TrimSpace(cfg.Address)
	if !cfg.Enabled || address == "" {
		return c, nil
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := (&net.Dialer{}).DialContext(ctx, "udp", address)
	if err != nil {
		return nil, fmt.Errorf("statsd dial %s: %w", address, err)
	}
	c.conn = conn
	c.buf = make([]byte, 0, c.maxPacket)

	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.flushLoop(interval)
	return c, nil
}

// Enabled reports whether the client actively emits metrics.
func (c *Client) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Count increments a counter metric.
func (c *Client) Count(name string, value int64, tags map[string]string) {
	c.add(name, strconv.FormatInt(value, 10)+"|c", tags)
}

// Gauge records the current value for a gauge metric.
func (c *Client) Gauge(name string, value float64, tags map[string]string) {
	c.add(name, formatFloat(value)+"|g", tags)
}

// Timing records a timing metric in milliseconds.
func (c *Client) Timing(name string, value time.Duration, tags map[string]string) {
	c.add(name, formatFloat(float64(value)/float64(time.Millisecond))+"|ms", tags)
}

// Flush sends any buffered lines immediately.
func (c *Client) Flush() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendLocked()
}

// Close flushes pending lines and releases the connection. Safe to call more than once.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.stopOnce.Do(func() {
		if c.stop != nil {
			close(c.stop)
			<-c.done
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.sendLocked()
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) flushLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Flush()
		}
	}
}

func (c *Client) add(name, payload string, tags map[string]string) {
	if c == nil {
		return
	}
	metric := c.metricName(name)
	if metric == "" {
		return
	}
	line := metric + ":" + payload + formatTags(c.tagSuffix, tags)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if len(c.buf) > 0 && len(c.buf)+1+len(line) > c.maxPacket {
		c.sendLocked()
	}
	if len(c.buf) > 0 {
		c.buf = append(c.buf, '\n')
	}
	c.buf = append(c.buf, line...)
	// An oversized line still goes out, alone in its own datagram.
	if len(c.buf) >= c.maxPacket {
		c.sendLocked()
	}
}

// sendLocked writes the buffered packet. c.mu must be held.
func (c *Client) sendLocked() {
	if len(c.buf) == 0 || c.conn == nil {
		return
	}
	if _, err := c.conn.Write(c.buf); err != nil {
		c.logger.Debug("statsd write failed", "bytes", len(c.buf), "error", err)
	}
	c.buf = c.buf[:0]
}

func (c *Client) metricName(name string) string {
	normalized := normalizeMetricName(name)
	switch {
	case normalized == "":
		return ""
	case c.prefix == "":
		return normalized
	default:
		return c.prefix + "." + normalized
	}
}

func sanitizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), ".")
}

func normalizeMetricName(name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		return ""
	}
	n = strings.NewReplacer(" ", "_", "/", "_", ":", "_", "|", "_").Replace(n)
	for strings.Contains(n, "..") {
		n = strings.ReplaceAll(n, "..", ".")
	}
	return strings.Trim(n, ".")
}

// formatTags merges global and local tags (local wins) into a sorted DogStatsD suffix.
func formatTags(global, local map[string]string) string {
	merged := cloneTags(global)
	for k, v := range cloneTags(local) {
		merged[k] = v
	}
	if len(merged) == 0 {
		return ""
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("|#")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(merged[k])
	}
	return b.String()
}

func cloneTags(tags map[string]string) map[string]string {
	cp := make(map[string]string, len(tags))
	for k, v := range tags {
		if key := strings.TrimSpace(k); key != "" {
			cp[key] = strings.TrimSpace(v)
		}
	}
	return cp
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
