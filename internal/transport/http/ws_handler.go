package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/view"
)

const writeWait = 10 * time.Second

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Index  int    `json:"index"`
	Option string `json:"option"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and binds one quiz session to the socket. The
// session's page patches are streamed to the client; client messages drive
// start, answer, render and submit. The session is discarded on disconnect.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage, 64)
	done := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("ws write error: %v", err)
					// unblocks the read loop
					conn.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	// push never blocks past the end of the connection, so the session's
	// countdown cannot wedge on a dead client.
	push := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-done:
		case <-writerDone:
		}
	}
	pushErr := func(err error) {
		push(outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	page := view.NewPage(func(p view.Patch) {
		push(outboundMessage{Type: "patch", Payload: p})
	})
	session := h.service.NewSession(page)
	defer h.service.Discard(session.ID())

	for _, p := range page.Snapshot() {
		push(outboundMessage{Type: "patch", Payload: p})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			if err := session.Start(r.Context()); err != nil {
				pushErr(err)
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				pushErr(errors.New("invalid answer payload"))
				continue
			}
			if err := h.service.Answer(session.ID(), payload.Index, payload.Option); err != nil {
				pushErr(err)
			}
		case "render":
			if err := session.Render(); err != nil {
				pushErr(err)
			}
		case "submit":
			if _, err := h.service.Submit(r.Context(), session.ID()); err != nil && !errors.Is(err, domain.ErrAlreadySubmitted) {
				pushErr(err)
			}
		default:
			pushErr(errors.New("unsupported message type"))
		}
	}

	close(done)
	<-writerDone
}
