package signaling

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cbodonnell/lockstep/pkg/log"
	"github.com/cbodonnell/lockstep/pkg/messages"
	"github.com/cbodonnell/lockstep/pkg/queue"
	"github.com/cbodonnell/lockstep/pkg/rollback"
	"github.com/gorilla/websocket"
)

const (
	inboxSize    = 1024
	outboxSize   = 256
	writeTimeout = 5 * time.Second
)

// Client is a socket to one room channel of the signaling server. Network I/O
// happens on background goroutines; every exported method returns immediately.
type Client struct {
	url string
	// perPoll caps the relayed packets handed out by one Receive; 0 means no cap
	perPoll int
	inbox   queue.Queue
	outbox chan []byte
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	lock    sync.Mutex
	id      string
	peers   map[string]struct{}
	pending []messages.Packet
	err     error
	taken   bool
	closed  bool
}

// Dial starts connecting a socket to url.
func Dial(url string) *Client {
	return dial(url, 0)
}

func dial(url string, perPoll int) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		url:     url,
		perPoll: perPoll,
		inbox:  queue.NewInMemoryQueue(inboxSize),
		outbox: make(chan []byte, outboxSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		peers:  make(map[string]struct{}),
	}
	go c.run()
	return c
}

func (c *Client) run() {
	defer close(c.done)

	log.Debug("Connecting to signaling server at %s", c.url)
	conn, _, err := websocket.DefaultDialer.DialContext(c.ctx, c.url, nil)
	if err != nil {
		c.fail(fmt.Errorf("failed to connect to signaling server: %w", err))
		return
	}
	defer conn.Close()

	go c.readLoop(conn)
	c.writeLoop(conn)
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.fail(fmt.Errorf("failed to read from signaling server: %w", err))
			}
			return
		}
		sig, err := messages.UnmarshalSignal(b)
		if err != nil {
			log.Warn("Dropping malformed signal: %v", err)
			continue
		}
		if err := c.inbox.Enqueue(sig); err != nil {
			log.Warn("Dropping signal of type %s: %v", sig.Type, err)
		}
	}
}

func (c *Client) writeLoop(conn *websocket.Conn) {
	for {
		select {
		case b := <-c.outbox:
			if err := c.write(conn, b); err != nil {
				c.fail(err)
				return
			}
		case <-c.ctx.Done():
			// flush what was sent before Close
			for {
				select {
				case b := <-c.outbox:
					if err := c.write(conn, b); err != nil {
						return
					}
				default:
					conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

func (c *Client) write(conn *websocket.Conn, b []byte) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("failed to write to signaling server: %w", err)
	}
	return nil
}

func (c *Client) fail(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.err == nil && !c.closed {
		log.Debug("Signaling socket %s failed: %v", c.url, err)
		c.err = err
	}
}

// drain applies queued signals. Must be called with the lock held.
func (c *Client) drain() {
	for _, item := range c.inbox.ReadAllMessages() {
		sig := item.(*messages.Signal)
		switch sig.Type {
		case messages.SignalIDAssigned:
			c.id = sig.Peer
		case messages.SignalPeerJoined:
			c.peers[sig.Peer] = struct{}{}
		case messages.SignalPeerLeft:
			delete(c.peers, sig.Peer)
		case messages.SignalRelay:
			c.pending = append(c.pending, messages.Packet{From: sig.Peer, Data: sig.Payload})
		default:
			log.Warn("Ignoring signal of unknown type %s", sig.Type)
		}
	}
}

// UpdatePeers applies peer discovery messages received since the last call.
func (c *Client) UpdatePeers() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.drain()
}

// ID returns the peer id assigned by the server, or "" before assignment.
func (c *Client) ID() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.id
}

// ConnectedPeers returns the ids of the other peers in the channel, sorted.
func (c *Client) ConnectedPeers() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	peers := make([]string, 0, len(c.peers))
	for id := range c.peers {
		peers = append(peers, id)
	}
	sort.Strings(peers)
	return peers
}

// Send queues data for delivery to peer.
func (c *Client) Send(peer string, data []byte) error {
	c.lock.Lock()
	closed, err := c.closed, c.err
	c.lock.Unlock()
	if closed {
		return ErrSocketClosed
	}
	if err != nil {
		return err
	}

	sig := &messages.Signal{Type: messages.SignalRelay, Peer: peer, Payload: data}
	b, err := sig.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal signal: %w", err)
	}
	select {
	case c.outbox <- b:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Receive returns the messages relayed from peers since the last call. A
// socket with a per-poll cap returns the oldest packets up to the cap and
// keeps the rest for later calls.
func (c *Client) Receive() []messages.Packet {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.drain()
	packets := c.pending
	if c.perPoll > 0 && len(packets) > c.perPoll {
		c.pending = append([]messages.Packet(nil), packets[c.perPoll:]...)
		return packets[:c.perPoll]
	}
	c.pending = nil
	return packets
}

// TakeChannel hands out the socket's data channel for a rollback session. It
// can be taken once.
func (c *Client) TakeChannel() (rollback.Channel, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.taken {
		return nil, ErrChannelTaken
	}
	c.taken = true
	return &channel{client: c}, nil
}

// Err returns the transport error that broke the socket, if any.
func (c *Client) Err() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.err
}

// Close closes the socket after flushing queued messages.
func (c *Client) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()
	// unread signals are dropped; the outbox is still flushed by the write loop
	c.inbox.ClearQueue()
	c.pending = nil
	return nil
}

// Done is closed once the socket's connection has shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

type channel struct {
	client *Client
}

func (ch *channel) SendTo(addr string, data []byte) error {
	return ch.client.Send(addr, data)
}

func (ch *channel) Receive() []messages.Packet {
	return ch.client.Receive()
}
