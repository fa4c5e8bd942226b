package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8000"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"30s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	// MaxBodyBytes caps submission bodies (form, multipart, or JSON).
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = ":8000"
	}

	origins := h.CORSAllowedOrigins[:0]
	for _, o := range h.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	h.CORSAllowedOrigins = origins

	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
	if h.MaxBodyBytes < 1024 {
		h.MaxBodyBytes = 1024
	}
}
