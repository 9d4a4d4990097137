package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	conn      *websocket.Conn
	Message   chan *Envelope
	ID        string
	done      chan struct{} // Signal for coordinating goroutine shutdown
	mu        sync.Mutex    // Mutex for connection access
	isClosed  bool          // Flag to track connection state
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, id string, sendBuffer int) *Client {
	return &Client{
		conn:    conn,
		Message: make(chan *Envelope, sendBuffer),
		ID:      id,
		done:    make(chan struct{}),
	}
}

// shutdown stops both pumps and closes the connection exactly once. The
// Message channel is never closed so concurrent sends cannot panic; pending
// envelopes are simply abandoned.
func (cl *Client) shutdown() {
	cl.closeOnce.Do(func() {
		close(cl.done)
		cl.mu.Lock()
		cl.isClosed = true
		if cl.conn != nil {
			cl.conn.Close()
		}
		cl.mu.Unlock()
	})
}

func (cl *Client) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("Ping error for client %s: %v", cl.ID, err)
				return
			}
		}
	}
}

func (cl *Client) writePump() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case env, ok := <-cl.Message:
			if !ok {
				return
			}

			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.conn.WriteJSON(env)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("Error sending event to client %s: %v", cl.ID, err)
				return
			}
		}
	}
}
