// notifier is the gorilla/websocket half of the job API: a single
// terminal push per fill job. Clients register into a map guarded by a
// Run loop, with one goroutine per connection pumping its send
// channel. A fill job has exactly one event worth pushing - its
// terminal state - so there is no streaming of partial solutions.
package apiserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// CompletionEvent is the sole message a subscriber ever receives: the
// job's terminal state.
type CompletionEvent struct {
	JobID      string `json:"jobId"`
	Status     Status `json:"status"`
	ResultText string `json:"resultText,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Client is one websocket subscriber waiting on a single job's
// completion.
type Client struct {
	JobID string
	conn  *websocket.Conn
	send  chan []byte
}

// Notifier fans a job's completion event out to every client currently
// subscribed to it, then drops them - there is nothing further to
// push.
type Notifier struct {
	mu       sync.Mutex
	subs     map[string][]*Client
	register chan *Client
}

// NewNotifier builds an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs:     make(map[string][]*Client),
		register: make(chan *Client),
	}
}

// Run processes registrations until stop is closed. Call it in its own
// goroutine.
func (n *Notifier) Run(stop <-chan struct{}) {
	for {
		select {
		case c := <-n.register:
			n.mu.Lock()
			n.subs[c.JobID] = append(n.subs[c.JobID], c)
			n.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Notify pushes event to every client subscribed to event.JobID, then
// forgets them; a job completes exactly once, so there is no reason to
// keep the subscriber list around afterward.
func (n *Notifier) Notify(event CompletionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("apiserver: failed to marshal completion event for job %s: %v", event.JobID, err)
		return
	}

	n.mu.Lock()
	clients := n.subs[event.JobID]
	delete(n.subs, event.JobID)
	n.mu.Unlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			close(c.send)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades r to a websocket connection subscribed to jobID's
// completion and blocks until the connection closes or the completion
// event has been delivered. If immediate is non-nil (the job had
// already completed before the subscriber connected), it is delivered
// directly instead of registering with n - there is no future Notify
// call coming for an event that already happened.
func ServeWs(n *Notifier, w http.ResponseWriter, r *http.Request, jobID string, immediate *CompletionEvent) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{JobID: jobID, conn: conn, send: make(chan []byte, 1)}

	if immediate != nil {
		data, err := json.Marshal(immediate)
		if err != nil {
			conn.Close()
			return err
		}
		client.send <- data
	} else {
		n.register <- client
	}

	go client.readPump()
	client.writePump()
	return nil
}

// readPump discards inbound traffic (subscribers never send anything
// meaningful) purely to notice the connection closing.
func (c *Client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump delivers at most one completion message, then closes the
// connection - there is nothing further for this client to receive.
func (c *Client) writePump() {
	defer c.conn.Close()
	select {
	case data, ok := <-c.send:
		if !ok {
			return
		}
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		c.conn.WriteMessage(websocket.TextMessage, data)
	case <-time.After(5 * time.Minute):
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "timed out waiting for job completion"))
	}
}
