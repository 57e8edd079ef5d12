package signaling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// DefaultRoomSize is the number of peers a room channel accepts.
const DefaultRoomSize = 2

// Server relays signals between the peers of a room channel.
type Server struct {
	port     int
	roomSize int
	router   *mux.Router

	lock  sync.Mutex
	rooms map[roomKey]*room
}

type NewServerOptions struct {
	Port     int
	RoomSize int
}

type roomKey struct {
	id      int
	channel ChannelKind
}

type room struct {
	peers map[string]*websocket.Conn
}

// RoomInfo describes an occupied room channel.
type RoomInfo struct {
	Room    int         `json:"room"`
	Channel ChannelKind `json:"channel"`
	Peers   int         `json:"peers"`
}

// NewServer creates a new signaling server.
func NewServer(opts NewServerOptions) *Server {
	if opts.RoomSize <= 0 {
		opts.RoomSize = DefaultRoomSize
	}
	s := &Server{
		port:     opts.Port,
		roomSize: opts.RoomSize,
		rooms:    make(map[roomKey]*room),
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	r.HandleFunc("/rooms", s.handleRooms).Methods("GET")
	r.HandleFunc("/{room:[0-9]+}/{channel:meta|game}", s.handleSocket)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	log.Info("Signaling server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Signaling server closed")
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Rooms()); err != nil {
		log.Error("Failed to encode rooms: %v", err)
	}
}

// Rooms lists the occupied room channels ordered by room and channel.
func (s *Server) Rooms() []RoomInfo {
	s.lock.Lock()
	defer s.lock.Unlock()
	rooms := make([]RoomInfo, 0, len(s.rooms))
	for key, rm := range s.rooms {
		rooms = append(rooms, RoomInfo{Room: key.id, Channel: key.channel, Peers: len(rm.peers)})
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Room != rooms[j].Room {
			return rooms[i].Room < rooms[j].Room
		}
		return rooms[i].Channel < rooms[j].Channel
	})
	return rooms
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["room"])
	if err != nil {
		http.Error(w, "invalid room", http.StatusBadRequest)
		return
	}
	key := roomKey{id: id, channel: ChannelKind(vars["channel"])}

	if s.full(key) {
		log.Warn("Rejecting connection to full room %d/%s", key.id, key.channel)
		http.Error(w, "room is full", http.StatusConflict)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Error("Failed to accept websocket: %v", err)
		return
	}

	peerID := uuid.NewString()
	existing, err := s.join(key, peerID, conn)
	if err != nil {
		conn.Close(websocket.StatusTryAgainLater, err.Error())
		return
	}
	log.Info("Peer %s joined room %d/%s", peerID, key.id, key.channel)

	s.write(conn, &messages.Signal{Type: messages.SignalIDAssigned, Peer: peerID})
	for otherID, other := range existing {
		s.write(conn, &messages.Signal{Type: messages.SignalPeerJoined, Peer: otherID})
		s.write(other, &messages.Signal{Type: messages.SignalPeerJoined, Peer: peerID})
	}

	s.relay(r.Context(), key, peerID, conn)

	for _, other := range s.leave(key, peerID) {
		s.write(other, &messages.Signal{Type: messages.SignalPeerLeft, Peer: peerID})
	}
	conn.Close(websocket.StatusNormalClosure, "")
	log.Info("Peer %s left room %d/%s", peerID, key.id, key.channel)
}

// relay forwards the peer's relay signals until its connection closes.
func (s *Server) relay(ctx context.Context, key roomKey, from string, conn *websocket.Conn) {
	for {
		sig := &messages.Signal{}
		if err := wsjson.Read(ctx, conn, sig); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Debug("Connection of peer %s closed: %v", from, err)
			}
			return
		}
		if sig.Type != messages.SignalRelay {
			log.Warn("Peer %s sent unexpected signal type %s", from, sig.Type)
			continue
		}

		target := s.peer(key, sig.Peer)
		if target == nil {
			log.Debug("Dropping relay from %s to unknown peer %s", from, sig.Peer)
			continue
		}
		s.write(target, &messages.Signal{Type: messages.SignalRelay, Peer: from, Payload: sig.Payload})
	}
}

func (s *Server) write(conn *websocket.Conn, sig *messages.Signal) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, sig); err != nil {
		log.Debug("Failed to write %s signal: %v", sig.Type, err)
	}
}

func (s *Server) full(key roomKey) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	rm, ok := s.rooms[key]
	return ok && len(rm.peers) >= s.roomSize
}

// join adds the peer to the room and returns the peers that were already there.
func (s *Server) join(key roomKey, peerID string, conn *websocket.Conn) (map[string]*websocket.Conn, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	rm, ok := s.rooms[key]
	if !ok {
		rm = &room{peers: make(map[string]*websocket.Conn)}
		s.rooms[key] = rm
	}
	if len(rm.peers) >= s.roomSize {
		return nil, fmt.Errorf("room %d/%s is full", key.id, key.channel)
	}
	existing := make(map[string]*websocket.Conn, len(rm.peers))
	for id, c := range rm.peers {
		existing[id] = c
	}
	rm.peers[peerID] = conn
	return existing, nil
}

// leave removes the peer and returns the remaining peers.
func (s *Server) leave(key roomKey, peerID string) []*websocket.Conn {
	s.lock.Lock()
	defer s.lock.Unlock()
	rm, ok := s.rooms[key]
	if !ok {
		return nil
	}
	delete(rm.peers, peerID)
	if len(rm.peers) == 0 {
		delete(s.rooms, key)
		return nil
	}
	remaining := make([]*websocket.Conn, 0, len(rm.peers))
	for _, c := range rm.peers {
		remaining = append(remaining, c)
	}
	return remaining
}

func (s *Server) peer(key roomKey, id string) *websocket.Conn {
	s.lock.Lock()
	defer s.lock.Unlock()
	rm, ok := s.rooms[key]
	if !ok {
		return nil
	}
	return rm.peers[id]
}

func (s *Server) closeAll() {
	s.lock.Lock()
	var conns []*websocket.Conn
	for _, rm := range s.rooms {
		for _, c := range rm.peers {
			conns = append(conns, c)
		}
	}
	s.lock.Unlock()

	for _, c := range conns {
		c.Close(websocket.StatusGoingAway, "server shutting down")
	}
}
