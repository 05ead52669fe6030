package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/senghongH/devdocs/internal/cache"
	"github.com/senghongH/devdocs/internal/config"
	"github.com/senghongH/devdocs/internal/content"
	"github.com/senghongH/devdocs/internal/site"
	"github.com/senghongH/devdocs/pkg/components"
	"github.com/senghongH/devdocs/pkg/live"
	"github.com/senghongH/devdocs/pkg/scheduler"
)

// devServer serves the generated site, streams live component updates and
// reloads connected browsers when the content tree changes.
type devServer struct {
	cfg       *config.Config
	generator *site.Generator
	watcher   *fsnotify.Watcher

	liveServer *live.Server

	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader

	buildMutex sync.Mutex

	rebuildTimer *time.Timer
	rebuildMu    sync.Mutex
}

func newDevCommand() *cobra.Command {
	var port int
	var host string
	var cwd string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long:  `Starts a development server with file watching, hot reloading and live component updates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cwd != "" {
				if err := os.Chdir(cwd); err != nil {
					return fmt.Errorf("changing directory to %s: %w", cwd, err)
				}
			}
			return runDev(host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the dev server on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the dev server to")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory of the site (defaults to current)")

	return cmd
}

func runDev(host string, port int) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	// CLI flags take precedence over site.yaml
	if host != "" {
		cfg.Dev.Host = host
	}
	if port != 0 {
		cfg.Dev.Port = port
	}

	renderCache, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Printf("%s cache unavailable: %v", styleWarn.Render("warning:"), err)
		renderCache = nil
	}

	gen := site.New(cfg, renderCache)
	gen.Dev = true

	s := &devServer{
		cfg:        cfg,
		generator:  gen,
		liveServer: live.NewServer(tipComponentFactory),
		wsClients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	fmt.Println(styleHeading.Render("devdocs dev server"))

	if _, err := s.rebuild(); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer s.watcher.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Dev.Host, cfg.Dev.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("%s %s\n", styleSuccess.Render("➜"),
			styleURL.Render("http://"+addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		fmt.Println(styleDim.Render("\nshutting down"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// tipComponentFactory mounts the tip list a page asks for in its HELLO
func tipComponentFactory(componentID string, sched *scheduler.Scheduler) (live.Component, bool) {
	set, ok := content.FindTipSet(componentID)
	if !ok {
		return nil, false
	}
	return components.NewTipList(set.ID, set.Tips, set.Lang, sched), true
}

// routes builds the dev server handler
func (s *devServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/live/", s.liveServer.HandleWebSocket)
	mux.HandleFunc("/__reload", s.handleReloadSocket)
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.OutputDir)))

	return mux
}

// startWatcher watches the content tree recursively
func (s *devServer) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	err = filepath.Walk(s.cfg.ContentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop debounces change bursts into a single rebuild
func (s *devServer) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !isContentEvent(event) {
				continue
			}

			// New directories need watching too
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					s.watcher.Add(event.Name)
				}
			}

			s.scheduleRebuild()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Dev] watcher error: %v", err)
		}
	}
}

// isContentEvent filters editor noise out of the watch stream
func isContentEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// scheduleRebuild coalesces rapid events into one rebuild
func (s *devServer) scheduleRebuild() {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if s.rebuildTimer != nil {
		s.rebuildTimer.Stop()
	}
	s.rebuildTimer = time.AfterFunc(250*time.Millisecond, func() {
		pages, err := s.rebuild()
		if err != nil {
			log.Printf("%s rebuild failed: %v", styleWarn.Render("✗"), err)
			return
		}
		log.Printf("%s rebuilt %d pages, reloading", styleSuccess.Render("✓"), pages)
		s.notifyReload()
	})
}

// rebuild regenerates the site
func (s *devServer) rebuild() (int, error) {
	s.buildMutex.Lock()
	defer s.buildMutex.Unlock()

	start := time.Now()
	pages, err := s.generator.Generate()
	if err != nil {
		return 0, err
	}

	fmt.Println(styleDim.Render(
		fmt.Sprintf("  built %d pages in %s", pages, time.Since(start).Round(time.Millisecond))))
	return pages, nil
}

// handleReloadSocket registers a browser for reload notifications
func (s *devServer) handleReloadSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Dev] reload socket upgrade failed: %v", err)
		return
	}

	s.wsMutex.Lock()
	s.wsClients[conn] = true
	s.wsMutex.Unlock()

	// Drain the connection until the browser goes away
	go func() {
		defer func() {
			s.wsMutex.Lock()
			delete(s.wsClients, conn)
			s.wsMutex.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// notifyReload tells every connected browser to refresh
func (s *devServer) notifyReload() {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	for conn := range s.wsClients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			log.Printf("[Dev] reload notify failed: %v", err)
		}
	}
}
