package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
	"nhooyr.io/websocket"
)

// WSServer represents a WebSocket server.
type WSServer struct {
	port int
	tls  *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	TLS  *TLSConfig
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port: opts.Port,
		tls:  opts.TLS,
	}
}

// WSHandler accepts WebSocket connections and runs a read loop for each.
type WSHandler struct {
	ctx               context.Context
	disconnectHandler DisconnectHandler
	messageHandler    MessageHandler
}

// Handler returns the http.Handler that serves WebSocket connections.
func (s *WSServer) Handler(ctx context.Context, disconnectHandler DisconnectHandler, messageHandler MessageHandler) *WSHandler {
	return &WSHandler{
		ctx:               ctx,
		disconnectHandler: disconnectHandler,
		messageHandler:    messageHandler,
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Error("Failed to accept WebSocket connection: %v", err)
		return
	}
	conn.SetReadLimit(messages.MessageBufferSize)
	log.Debug("New WebSocket connection from %s", r.RemoteAddr)
	handleWSConnection(h.ctx, conn, r.RemoteAddr, h.disconnectHandler, h.messageHandler)
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context, disconnectHandler DisconnectHandler, messageHandler MessageHandler) {
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler(ctx, disconnectHandler, messageHandler))

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection reads messages until the connection closes. Messages
// are handled in order so intents from one client are never reordered.
func handleWSConnection(ctx context.Context, conn *websocket.Conn, remoteAddr string, disconnectHandler DisconnectHandler, messageHandler MessageHandler) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		disconnectHandler(conn)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		typ, b, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Error("Error reading WebSocket message from %s: %v", remoteAddr, err)
			}
			log.Trace("Connection closed for %s", remoteAddr)
			return
		}
		if typ != websocket.MessageBinary {
			log.Warn("Ignoring non-binary WebSocket message from %s", remoteAddr)
			continue
		}

		message, err := messages.DeserializeMessage(b)
		if err != nil {
			log.Warn("Failed to deserialize message from %s: %v", remoteAddr, err)
			continue
		}

		messageHandler(ctx, conn, message)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	if conn == nil {
		return fmt.Errorf("no WebSocket connection")
	}

	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	typ, message, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageBinary {
		return nil, fmt.Errorf("unexpected WebSocket message type %v", typ)
	}

	msg, err := messages.DeserializeMessage(message)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
