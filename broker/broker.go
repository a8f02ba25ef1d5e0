// Package broker owns the TCP accept loop and the per-connection request
// cycle. All codec work happens in the protocol package; this layer only
// moves frames.
package broker

import (
	"errors"
	"fmt"
	"io"
	"net"

	log "github.com/tinkafka/tinkafka/logging"
	"github.com/tinkafka/tinkafka/metrics"
	"github.com/tinkafka/tinkafka/protocol"
	"github.com/tinkafka/tinkafka/serde"
	"github.com/tinkafka/tinkafka/types"
)

// Broker accepts client connections and runs one request cycle at a time
// per connection.
type Broker struct {
	Config     types.Configuration
	Dispatcher *protocol.Dispatcher
	listener   net.Listener
}

// NewBroker creates a Broker with the provided configuration and
// supported-version table source.
func NewBroker(config types.Configuration, versions protocol.VersionSource) *Broker {
	return &Broker{
		Config:     config,
		Dispatcher: protocol.NewDispatcher(versions),
	}
}

// Listen binds the broker's TCP listener.
func (b *Broker) Listen() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", b.Config.BrokerHost, b.Config.BrokerPort))
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	b.listener = listener
	log.Info("Server is listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound listener address.
func (b *Broker) Addr() net.Addr {
	return b.listener.Addr()
}

// Serve accepts connections until the listener is closed, handling each in
// its own goroutine.
func (b *Broker) Serve() {
	for {
		conn, err := b.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Error("Error accepting connection: %v", err)
			continue
		}
		go b.HandleConnection(conn)
	}
}

// Startup binds the listener, exposes metrics if configured, and begins
// serving in the background.
func (b *Broker) Startup() error {
	if err := b.Listen(); err != nil {
		return err
	}
	if b.Config.MetricsAddress != "" {
		go func() {
			if err := metrics.Serve(b.Config.MetricsAddress); err != nil {
				log.Error("metrics server: %v", err)
			}
		}()
	}
	go b.Serve()
	return nil
}

// Shutdown closes the listener; in-flight connections finish their current
// cycle on their own goroutines.
func (b *Broker) Shutdown() {
	log.Info("Broker shutting down...")
	if b.listener != nil {
		b.listener.Close()
	}
}

// HandleConnection processes request frames from a client connection,
// strictly one at a time. A decode or encode failure aborts only the
// current cycle; the connection stays open for the next frame.
func (b *Broker) HandleConnection(conn net.Conn) {
	defer conn.Close()
	connectionAddr := conn.RemoteAddr().String()
	log.Debug("Connection established with %s", connectionAddr)
	metrics.OpenConnections.Inc()
	defer metrics.OpenConnections.Dec()

	for {
		// First read the length, then allocate a slice based on it.
		// ReadFull (not Read) ensures the entire request is read; partial
		// data would result in parsing errors.
		lengthBuffer := make([]byte, 4)
		if _, err := io.ReadFull(conn, lengthBuffer); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("failed to read request length: %v", err)
			}
			break
		}
		length := serde.Encoding.Uint32(lengthBuffer)
		buffer := make([]byte, length+4)
		copy(buffer, lengthBuffer)
		if _, err := io.ReadFull(conn, buffer[4:]); err != nil {
			log.Error("Error reading from connection: %v", err)
			break
		}

		req, err := protocol.ParseHeader(buffer, connectionAddr)
		if err != nil {
			log.Error("Error parsing request header: %v", err)
			metrics.RequestErrors.WithLabelValues("header").Inc()
			continue
		}

		apiKeyHandler := b.Dispatcher.APIDispatcher(req.RequestAPIKey)
		if apiKeyHandler.Handler == nil {
			// Unsupported API key: drop the frame without a response.
			log.Debug("Dropping request with unsupported API key %d", req.RequestAPIKey)
			metrics.UnknownAPIRequests.Inc()
			continue
		}
		log.Debug("Received %s | RequestAPIVersion: %v | CorrelationID: %v | Length: %v",
			apiKeyHandler.Name, req.RequestAPIVersion, req.CorrelationID, length)
		metrics.RequestsReceived.WithLabelValues(apiKeyHandler.Name).Inc()

		response, err := apiKeyHandler.Handler(req)
		if err != nil {
			log.Error("Error handling %s request: %v", apiKeyHandler.Name, err)
			metrics.RequestErrors.WithLabelValues(apiKeyHandler.Name).Inc()
			continue
		}

		if _, err := conn.Write(response); err != nil {
			log.Error("Error writing to connection: %v", err)
			break
		}
	}
	log.Debug("Connection with %s closed.", connectionAddr)
}
