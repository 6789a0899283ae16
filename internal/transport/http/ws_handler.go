package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// PlayHandler runs one quiz session per websocket connection.
type PlayHandler struct {
	service      *app.QuizService
	upgrader     websocket.Upgrader
	tickInterval time.Duration
}

func NewPlayHandler(service *app.QuizService) *PlayHandler {
	return NewPlayHandlerWithTick(service, time.Second)
}

// NewPlayHandlerWithTick is used by tests to speed up the session clock.
func NewPlayHandlerWithTick(service *app.QuizService, tick time.Duration) *PlayHandler {
	return &PlayHandler{
		service:      service,
		tickInterval: tick,
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

type submitPayload struct {
	Selected []int `json:"selected"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type optionView struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

type questionView struct {
	SessionID string       `json:"sessionId"`
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Text      string       `json:"text"`
	Options   []optionView `json:"options"`
	Multiple  bool         `json:"multiple"`
	Time      string       `json:"time"`
	Paused    bool         `json:"paused"`
}

type clockView struct {
	Remaining int    `json:"remaining"`
	Time      string `json:"time"`
	Paused    bool   `json:"paused"`
}

type resultView struct {
	Attempt domain.AttemptRecord `json:"attempt"`
	Review  []domain.ReviewEntry `json:"review"`
}

// ServeWS upgrades the request and drives a session until it completes or
// the client disconnects. Query: set, count ("all" or n), time (minutes or
// "unlimited").
func (h *PlayHandler) ServeWS(c *gin.Context) {
	cfg, err := app.ParseSessionConfig(c.Query("set"), c.Query("count"), c.Query("time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	session, err := h.service.StartSession(ctx, cfg)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	inbound := make(chan inboundMessage)
	readerDone := make(chan struct{})
	go func() {
		defer close(inbound)
		for {
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case inbound <- msg:
			case <-readerDone:
				return
			}
		}
	}()
	defer close(readerDone)

	var ticks <-chan time.Time
	if session.TimeLimited() {
		ticker := time.NewTicker(h.tickInterval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	send := func(msgType string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
			log.Printf("ws write error: %v", err)
			return false
		}
		return true
	}

	if !send("question", questionSnapshot(session)) {
		return
	}

	// Every session event runs on this goroutine.
	for session.State() == app.StateActive {
		select {
		case msg, ok := <-inbound:
			if !ok {
				return
			}
			if !h.handleMessage(session, msg, send) {
				return
			}
		case <-ticks:
			if err := session.Tick(); err != nil {
				continue
			}
			if session.State() == app.StateActive {
				if !send("tick", clockView{Remaining: session.Remaining(), Time: session.TimeDisplay(), Paused: session.Paused()}) {
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}

	record, err := h.service.Finish(ctx, cfg.SetID, session)
	if err != nil {
		send("error", errorPayload{Message: err.Error()})
		return
	}
	review, _ := session.Review()
	send("result", resultView{Attempt: record, Review: review})
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "quiz complete"))
}

func (h *PlayHandler) handleMessage(session *app.Session, msg inboundMessage, send func(string, any) bool) bool {
	switch msg.Type {
	case "submit":
		var payload submitPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return send("error", errorPayload{Message: "invalid submit payload"})
		}
		if notice := session.SelectionNotice(payload.Selected); notice != "" {
			if !send("notice", errorPayload{Message: notice}) {
				return false
			}
		}
		// Empty or out-of-range selections re-ask the same question.
		if err := session.SubmitAnswer(payload.Selected); err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
	case "skip":
		if err := session.Skip(); err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
	case "pause":
		paused, err := session.TogglePause()
		if err != nil {
			return send("error", errorPayload{Message: err.Error()})
		}
		return send("paused", clockView{Remaining: session.Remaining(), Time: session.TimeDisplay(), Paused: paused})
	default:
		return send("error", errorPayload{Message: "unsupported message type"})
	}

	if session.State() == app.StateActive {
		return send("question", questionSnapshot(session))
	}
	return true
}

func questionSnapshot(session *app.Session) questionView {
	q, _ := session.CurrentQuestion()
	progress := session.Progress()
	options := make([]optionView, len(q.Options))
	for i, text := range q.Options {
		options[i] = optionView{Letter: domain.OptionLetter(i), Text: text}
	}
	return questionView{
		SessionID: session.ID(),
		Index:     progress.Index,
		Total:     progress.Total,
		Text:      q.Text,
		Options:   options,
		Multiple:  q.Multiple,
		Time:      session.TimeDisplay(),
		Paused:    session.Paused(),
	}
}
