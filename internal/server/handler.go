package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"webrogue/internal/catalog"
	"webrogue/internal/game"
	"webrogue/internal/generate"
	"webrogue/internal/logging"
	"webrogue/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and hands the connection to the actor. The
// calling goroutine becomes the read pump.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := newClient(ws)
	s.join(c)
	go c.writePump()
	c.readPump(s)
}

// Routes builds the HTTP surface: the game socket, a couple of read-only
// JSON endpoints, and the static client.
func Routes(s *Server, reg *catalog.Registry, gen *generate.Config, webDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.HandleWS)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/catalog", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reg.All())
	})

	// Preview endpoint: generates a throwaway level so the client can be
	// developed against realistic map data without joining a game.
	mux.HandleFunc("/api/map", func(w http.ResponseWriter, r *http.Request) {
		cfg := *gen
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
		sess := game.NewSession(&cfg, cfg.Rand)
		snap := protocol.BuildSnapshot(sess, game.Result{})
		payload, err := snap.For("", 0)
		if err != nil {
			http.Error(w, "generation failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})

	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L.Errorw("encode response failed", "err", err)
	}
}
