package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/metrics"
)

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	msgType string
	data    []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct {
	doneCh chan struct{}
}

func (cmdStop) hubCmd() {}

// --- Hub ---

type Hub struct {
	cmdCh      chan hubCmd
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
}

// NewHub creates the overlay hub and starts its actor goroutine.
func NewHub(maxClients int) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, 256),
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			close(c.doneCh)
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting overlay client: max clients reached", "max", h.maxClients)
		c.conn.Close()
		c.errCh <- fmt.Errorf("max overlay clients (%d) reached", h.maxClients)
		return
	}

	h.clients[c.conn] = newClientWriter(c.conn)
	metrics.OverlayClients.Set(float64(len(h.clients)))
	slog.Info("Overlay client connected", "clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, ok := h.clients[conn]
	if !ok {
		return
	}

	cw.stop()
	delete(h.clients, conn)
	metrics.OverlayClients.Set(float64(len(h.clients)))
	slog.Info("Overlay client disconnected", "clients", len(h.clients))
}

func (h *Hub) handleBroadcast(c cmdBroadcast) {
	metrics.OverlayMessagesTotal.WithLabelValues(c.msgType).Inc()

	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- c.data:
		default:
			// client is slow, mark for removal
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow overlay client")
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
	metrics.OverlayClients.Set(0)
}

func (h *Hub) send(msgType string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal overlay message", "type", msgType, "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{msgType: msgType, data: data}
}

// --- Public API ---

// Register adds an overlay client. Returns an error when the hub is full.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes an overlay client and stops its writer.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// ClientCount returns the number of connected overlay clients. Also serves
// as a barrier: all previously sent commands have been processed when it
// returns.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop disconnects every client and terminates the actor goroutine.
func (h *Hub) Stop() {
	doneCh := make(chan struct{})
	h.cmdCh <- cmdStop{doneCh: doneCh}
	<-doneCh
}

// --- domain.Display ---

func (h *Hub) AppendParticle(p domain.Particle) {
	h.send(TypeParticleAppend, particleAppendMsg{Type: TypeParticleAppend, Particle: p})
}

func (h *Hub) FadeParticle(id uuid.UUID) {
	h.send(TypeParticleFade, particleIDMsg{Type: TypeParticleFade, ID: id})
}

func (h *Hub) RemoveParticle(id uuid.UUID) {
	h.send(TypeParticleRemove, particleIDMsg{Type: TypeParticleRemove, ID: id})
}

func (h *Hub) ClearParticles() {
	h.send(TypeParticleClear, particleClearMsg{Type: TypeParticleClear})
}

func (h *Hub) SetTranslation(target, text string) {
	h.send(TypeTranslationSet, translationSetMsg{Type: TypeTranslationSet, Target: target, Text: text})
}

func (h *Hub) SetTranslationSlots(targets []string) {
	h.send(TypeTranslationSlots, translationSlotsMsg{Type: TypeTranslationSlots, Targets: targets})
}

func (h *Hub) SetTranscript(finalized, interim string) {
	h.send(TypeTranscript, transcriptMsg{Type: TypeTranscript, Finalized: finalized, Interim: interim})
}

func (h *Hub) SetMood(m domain.Mood) {
	h.send(TypeMood, moodMsg{Type: TypeMood, Mood: m})
}

func (h *Hub) SetStatus(s domain.ListenStatus) {
	h.send(TypeStatus, statusMsg{Type: TypeStatus, Status: s})
}
