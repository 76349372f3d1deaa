package server

import (
	"encoding/json"

	"webrogue/internal/game"
	"webrogue/internal/logging"
	"webrogue/internal/protocol"
)

type reqKind int

const (
	reqJoin reqKind = iota
	reqLeave
	reqMessage
)

type request struct {
	kind reqKind
	c    *client
	data []byte
}

// Server owns a single game session. Every mutation flows through the
// request channel into one actor goroutine, so the session never needs a
// lock and every broadcast observes a settled state.
type Server struct {
	sess     *game.Session
	reg      *Registry
	clients  map[string]*client // conn id -> client
	requests chan request
	done     chan struct{}
}

// New wraps sess in a server. Run must be started before handlers accept
// connections.
func New(sess *game.Session) *Server {
	return &Server{
		sess:     sess,
		reg:      NewRegistry(),
		clients:  make(map[string]*client),
		requests: make(chan request, 64),
		done:     make(chan struct{}),
	}
}

// Run processes requests until Close is called. It is the only goroutine
// that touches the session, the registry and client cursors.
func (s *Server) Run() {
	for {
		select {
		case req := <-s.requests:
			switch req.kind {
			case reqJoin:
				s.handleJoin(req.c)
			case reqLeave:
				s.handleLeave(req.c)
			case reqMessage:
				s.handleMessage(req.c, req.data)
			}
		case <-s.done:
			for _, c := range s.clients {
				close(c.send)
			}
			return
		}
	}
}

// Close stops the actor and disconnects every client.
func (s *Server) Close() {
	close(s.done)
}

func (s *Server) join(c *client) {
	select {
	case s.requests <- request{kind: reqJoin, c: c}:
	case <-s.done:
		c.ws.Close()
	}
}

func (s *Server) leave(c *client) {
	select {
	case s.requests <- request{kind: reqLeave, c: c}:
	case <-s.done:
	}
}

func (s *Server) message(c *client, data []byte) {
	select {
	case s.requests <- request{kind: reqMessage, c: c, data: data}:
	case <-s.done:
	}
}

func (s *Server) handleJoin(c *client) {
	connID, playerID, name := s.reg.Register()
	c.connID = connID
	c.playerID = playerID
	s.clients[connID] = c

	welcome, err := json.Marshal(protocol.NewWelcome(playerID))
	if err != nil {
		logging.L.Errorw("marshal welcome failed", "player", playerID, "err", err)
		s.reg.Unregister(connID)
		delete(s.clients, connID)
		close(c.send)
		return
	}
	c.enqueue(welcome)

	s.sess.AddPlayer(playerID, name)
	logging.L.Infow("player joined", "player", playerID, "conn", connID)
	s.broadcast(game.Result{Outcome: game.OutcomeOK, Mutated: true})
}

func (s *Server) handleLeave(c *client) {
	playerID, ok := s.reg.Unregister(c.connID)
	if !ok {
		return
	}
	if old, live := s.clients[c.connID]; live {
		delete(s.clients, c.connID)
		close(old.send)
	}
	res := s.sess.RemovePlayer(playerID)
	logging.L.Infow("player left", "player", playerID, "conn", c.connID)
	s.broadcast(res)
}

func (s *Server) handleMessage(c *client, data []byte) {
	if _, live := s.clients[c.connID]; !live {
		return
	}
	act, err := protocol.ParseCommand(data)
	if err != nil {
		logging.L.Warnw("malformed command", "player", c.playerID, "err", err)
		return
	}
	if act.Kind == game.ActionPing {
		s.unicast(c)
		return
	}
	res := s.sess.HandleAction(c.playerID, act)
	if !res.Mutated {
		logging.L.Debugw("action rejected", "player", c.playerID, "outcome", res.Outcome.String())
		return
	}
	s.broadcast(res)
}

// broadcast captures one snapshot and fans the personalized frame out to
// every connection, advancing each connection's event cursor. A client
// whose queue is full gets closed rather than skipped so no receiver ever
// sees a gap in the update stream.
func (s *Server) broadcast(res game.Result) {
	if len(s.clients) == 0 {
		return
	}
	snap := protocol.BuildSnapshot(s.sess, res)
	for _, c := range s.clients {
		payload, err := snap.For(c.playerID, c.cursor)
		if err != nil {
			logging.L.Errorw("marshal update failed", "player", c.playerID, "err", err)
			continue
		}
		c.cursor = snap.LogLen()
		if !c.enqueue(payload) {
			logging.L.Warnw("send queue full, dropping connection", "player", c.playerID)
			s.drop(c)
		}
	}
}

// unicast sends a fresh snapshot to a single connection. Used for pings.
func (s *Server) unicast(c *client) {
	snap := protocol.BuildSnapshot(s.sess, game.Result{Outcome: game.OutcomeOK})
	payload, err := snap.For(c.playerID, c.cursor)
	if err != nil {
		logging.L.Errorw("marshal update failed", "player", c.playerID, "err", err)
		return
	}
	c.cursor = snap.LogLen()
	if !c.enqueue(payload) {
		logging.L.Warnw("send queue full, dropping connection", "player", c.playerID)
		s.drop(c)
	}
}

// drop severs a connection from inside the actor. The session cleanup runs
// through the normal leave path once readPump notices the closed socket.
func (s *Server) drop(c *client) {
	if _, live := s.clients[c.connID]; !live {
		return
	}
	delete(s.clients, c.connID)
	close(c.send)
	c.ws.Close()
}
