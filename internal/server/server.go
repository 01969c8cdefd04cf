package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tatianab/mansion/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

//go:embed static
var staticFiles embed.FS

// Config configures a Server.
type Config struct {
	Addr string
	// Seed makes combat reproducible: connection n rolls with Seed+n. Zero
	// seeds every game from the clock.
	Seed   int64
	Logger *logrus.Logger
}

// Server hosts one independent game per WebSocket connection.
type Server struct {
	addr     string
	seed     int64
	logger   *logrus.Logger
	upgrader websocket.Upgrader
	games    atomic.Int64
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Server{
		addr:   cfg.Addr,
		seed:   cfg.Seed,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: the browser client, the game socket and a
// health probe.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(static))
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("Mansion server listening on %s", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	n := s.games.Add(1)
	log := s.logger.WithFields(logrus.Fields{"game": n, "remote": r.RemoteAddr})
	log.Info("player connected")

	var seed int64
	if s.seed != 0 {
		seed = s.seed + n
	}
	eng := engine.New(engine.WithRoller(engine.NewRoller(seed)), engine.WithLogEntry(log))

	conn.SetReadLimit(maxMessageSize)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read failed")
			}
			break
		}

		var cmd ClientCommand
		var resp ServerResponse
		if err := json.Unmarshal(payload, &cmd); err != nil {
			log.WithError(err).Debug("discarding malformed command")
			resp = ServerResponse{Snapshot: eng.Snapshot(), Error: "malformed command"}
		} else {
			resp = apply(eng, cmd)
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.WithError(err).Warn("failed to set write deadline")
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Debug("write failed")
			break
		}
	}
	log.WithField("turns", eng.Turns()).Info("player disconnected")
}
