// Package server publishes the generated documents over HTTP so that address
// book and calendar clients can subscribe to them.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-vcfedit/internal/config"
)

// ErrUnknownRoute is returned by Update for a route the server does not publish.
var ErrUnknownRoute = errors.New(config.ErrRouteUnknown)

// cacheItem stores a rendered document and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// document is one published route.
type document struct {
	contentType string

	// cache uses atomic.Pointer for lock-free reads: documents are fetched
	// often by clients and replaced only when the contact changes.
	cache atomic.Pointer[cacheItem]
}

// DocumentServer serves the contact card and its calendar feed.
// The set of routes is fixed at construction; only their content changes.
type DocumentServer struct {
	Port string
	docs map[string]*document
}

// NewDocumentServer creates a server publishing config.RouteContactVCF and
// config.RouteContactICS.
func NewDocumentServer(port string) *DocumentServer {
	return &DocumentServer{
		Port: port,
		docs: map[string]*document{
			config.RouteContactVCF: {contentType: config.MimeTextVCard},
			config.RouteContactICS: {contentType: config.MimeTextCalendar},
		},
	}
}

// Handler returns the HTTP handler serving every route.
func (s *DocumentServer) Handler() http.Handler {
	mux := http.NewServeMux()
	for route := range s.docs {
		mux.HandleFunc(route, s.handleDocumentRequest)
	}
	return mux
}

// ValidatePort checks that port is a number between config.MinPort and config.MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %q", config.ErrPortNumber, port)
	}
	if n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf("%s: %d", config.ErrPortRange, n)
	}
	return nil
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *DocumentServer) Start(ctx context.Context) error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the content served at route.
func (s *DocumentServer) Update(route string, data []byte) error {
	doc, ok := s.docs[route]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	// Readers see either the old or the new complete item, never a partial state.
	doc.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, route,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
	return nil
}

// handleDocumentRequest serves a document with HTTP caching support.
func (s *DocumentServer) handleDocumentRequest(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docs[r.URL.Path]
	if !ok {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := doc.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, doc.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRoute, r.URL.Path,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match, then If-Modified-Since.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}
