package viewer

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.tpnote.dev/tpnote/linkrewrite"
	"go.tpnote.dev/tpnote/scheme"
)

// ServeOptions configures one viewer session.
type ServeOptions struct {
	Path     string
	Scheme   *scheme.Scheme
	Resolver *linkrewrite.Resolver
	Theme    string

	Port           int
	MimeTypes      map[string]string
	NoteCap        int
	BrowserCommand string
	Launcher       Launcher
}

// Session is a running viewer server. Wait blocks until the session
// ends, which happens when the launched browser exits. Shutdown (e.g.
// on SIGINT) stops the server but does not end Wait; a session started
// without a browser never ends Wait.
type Session struct {
	URL   string
	state *ViewerState

	watcher *FileWatcher
	srv     *http.Server
	done    chan struct{}
}

// Wait blocks until the launched browser has exited and the session has
// shut down.
func (s *Session) Wait() { <-s.done }

// Done returns a channel closed when the launched browser has exited and
// the session has shut down, for callers that need to select on it alongside other events (e.g.
// a SIGINT handler).
func (s *Session) Done() <-chan struct{} { return s.done }

// Shutdown stops the HTTP server and the file watcher. Safe to call
// more than once.
func (s *Session) Shutdown(ctx context.Context) {
	s.watcher.Stop()
	s.state.Broadcast.Close()
	_ = s.srv.Shutdown(ctx)
}

// Serve starts a viewer session for opts.Path: binds 127.0.0.1 on
// opts.Port (0 picks a free port), renders the initial document, starts
// the file watcher, and — if opts.Launcher is set — launches the
// configured browser pointed at the session URL. It returns once the
// server is accepting connections; the caller decides whether/when to
// Wait.
//
// gin.Engine.Run hides its net.Listener, so the free-port-then-report-
// the-URL requirement (spec.md §4.J) is built directly on net.Listen and
// http.Server instead of Run — the one place this package reaches past
// gin's own convenience wrapper.
func Serve(opts ServeOptions) (*Session, error) {
	docRoot := opts.Resolver.DocRoot(filepath.Dir(opts.Path))

	noteExts := make(map[string]bool, len(opts.Scheme.Extensions))
	for ext := range opts.Scheme.Extensions {
		noteExts[ext] = true
	}

	state := NewViewerState(docRoot, opts.MimeTypes, noteExts, opts.NoteCap)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, opts, state)

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", opts.Port))
	if err != nil {
		return nil, fmt.Errorf("viewer: binding: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/"

	srv := &http.Server{Handler: router}

	go func() {
		_ = srv.Serve(ln)
	}()

	if err := renderAndCache(opts, state); err != nil {
		return nil, fmt.Errorf("viewer: initial render: %w", err)
	}

	watcher, err := NewFileWatcher(opts.Path, func() {
		if err := renderAndCache(opts, state); err == nil {
			state.Broadcast.Publish(ChangeEvent{Path: opts.Path})
		}
	})
	if err != nil {
		_ = srv.Close()
		return nil, fmt.Errorf("viewer: starting watcher: %w", err)
	}
	watcher.Start()

	sess := &Session{URL: url, state: state, watcher: watcher, srv: srv, done: make(chan struct{})}

	if opts.Launcher != nil && opts.BrowserCommand != "" {
		browserDone, err := opts.Launcher.Launch(context.Background(), opts.BrowserCommand, url)
		if err != nil {
			sess.Shutdown(context.Background())
			close(sess.done)
			return nil, fmt.Errorf("viewer: launching browser: %w", err)
		}

		go func() {
			<-browserDone
			sess.Shutdown(context.Background())
			close(sess.done)
		}()
	}

	return sess, nil
}

func renderAndCache(opts ServeOptions, state *ViewerState) error {
	doc, err := RenderDocument(opts.Path, opts.Scheme, opts.Resolver, opts.Theme)
	if err != nil {
		return err
	}

	state.SetHTML(doc.HTML)
	for _, link := range doc.Links {
		state.Reference(link)
	}

	return nil
}

func registerRoutes(router *gin.Engine, opts ServeOptions, state *ViewerState) {
	router.GET("/", func(c *gin.Context) {
		html := state.HTML()
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	})

	router.GET("/events", func(c *gin.Context) {
		sub := state.Broadcast.Subscribe()
		defer sub.Close()

		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-sub.C():
				if !ok {
					return false
				}
				c.SSEvent("reload", ev.Path)
				return true
			case <-ticker.C:
				c.SSEvent("ping", "")
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	})

	router.GET("/static/*path", func(c *gin.Context) {
		rel := c.Param("path")
		target := filepath.Join(state.docRoot, rel)

		mime, ok := state.Allow(target)
		if !ok {
			c.Status(http.StatusForbidden)
			return
		}

		f, err := os.Open(target)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}

		state.MarkServed(target)
		c.Header("Content-Type", mime)
		http.ServeContent(c.Writer, c.Request, filepath.Base(target), info.ModTime(), f)
	})
}
