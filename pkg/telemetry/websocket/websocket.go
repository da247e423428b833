// Package websocket serves telemetry to websocket clients, one binary
// message per frame.
package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/mcu.go/pkg/framework"
)

// DefaultPath is where the Server accepts clients.
const DefaultPath = "/telemetry"

// ReadWriter sends and receives packets as binary websocket messages.
type ReadWriter websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return (*ReadWriter)(conn)
}

// Dial connects to a telemetry server, e.g. ws://robot:8080/telemetry.
func Dial(url string) (*ReadWriter, error) {
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// ReadPacket reads one packet.
func (p *ReadWriter) ReadPacket() (pkt []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(p), &pkt)
	return
}

// WritePacket implements telemetry.Sink.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), pkt)
}

// Close closes the connection.
func (p *ReadWriter) Close() error {
	return (*websocket.Conn)(p).Close()
}

// Server broadcasts packets to every connected client.
type Server struct {
	Addr string
	Path string

	lock    sync.Mutex
	clients map[*ReadWriter]struct{}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{Addr: addr, Path: DefaultPath}
}

// Handler returns the http.Handler accepting clients.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.serve)
}

func (s *Server) serve(conn *websocket.Conn) {
	rw := New(conn)
	s.lock.Lock()
	if s.clients == nil {
		s.clients = make(map[*ReadWriter]struct{})
	}
	s.clients[rw] = struct{}{}
	s.lock.Unlock()
	glog.Infof("telemetry client %s connected", conn.Request().RemoteAddr)
	// clients only listen, reading detects the close.
	for {
		if _, err := rw.ReadPacket(); err != nil {
			break
		}
	}
	s.remove(rw)
	glog.Infof("telemetry client %s disconnected", conn.Request().RemoteAddr)
}

func (s *Server) remove(rw *ReadWriter) {
	s.lock.Lock()
	delete(s.clients, rw)
	s.lock.Unlock()
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

// WritePacket implements telemetry.Sink. Clients failing to receive are
// disconnected.
func (s *Server) WritePacket(pkt []byte) error {
	s.lock.Lock()
	clients := make([]*ReadWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.lock.Unlock()
	var errs fx.AggregatedError
	for _, c := range clients {
		if err := c.WritePacket(pkt); err != nil {
			errs.Add(err)
			s.remove(c)
			c.Close()
		}
	}
	return errs.Aggregate()
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}
	mux := http.NewServeMux()
	mux.Handle(path, s.Handler())
	srv := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("telemetry websocket on %s%s", s.Addr, path)
	return fx.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
}
