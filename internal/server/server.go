// Package server shares one rope with browsers over websockets. Clients send
// pointer moves; the server steps the rope at a fixed rate and broadcasts
// every frame to all of them.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/ropesim/internal/log"
	"golang.org/x/sync/errgroup"
)

//go:embed static
var static embed.FS

const DefaultFPS = 60

type Server struct {
	hub      *Hub
	scene    *Scene
	lg       *log.Logger
	interval time.Duration
	upgrader websocket.Upgrader
}

// New serves scene, broadcasting fps frames a second. Each frame advances
// the rope by the scene's dt, independent of the broadcast rate.
func New(scene *Scene, fps int, lg *log.Logger) *Server {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Server{
		hub:      NewHub(lg),
		scene:    scene,
		lg:       lg,
		interval: time.Second / time.Duration(fps),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	root, _ := fs.Sub(static, "static")
	mux.Handle("/", http.FileServer(http.FS(root)))
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/api/frame", s.serveFrame)
	return mux
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.lg.Warnf("websocket upgrade: %v", err)
		return
	}

	client := NewClient(s.hub, s.scene, conn)
	if !client.Register() {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.scene.Snapshot()); err != nil {
		s.lg.Warnf("encode frame: %v", err)
	}
}

// Run drives the hub and the tick loop until ctx is cancelled. A diverged
// rope is rebuilt rather than ending the loop.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		frame, err := s.scene.Step()
		if err != nil {
			s.lg.Errorf("step: %v; resetting", err)
			if err := s.scene.Reset(); err != nil {
				return err
			}
			continue
		}

		payload, err := json.Marshal(frame)
		if err != nil {
			return err
		}
		s.hub.Broadcast(ctx, payload)
	}
}

// ListenAndServe runs the server on addr until ctx is cancelled, then shuts
// the HTTP listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		s.lg.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
