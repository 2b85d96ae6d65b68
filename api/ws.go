package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type   string `json:"type"`
	Widget *int   `json:"widget,omitempty"`
	Value  string `json:"value,omitempty"`
	Path   []int  `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	write := func(msgType int, data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(msgType, data)
	}
	writeJSONMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	hb := h.ws.Hub()
	client := hb.Attach() // replays the latest state; kicks any prior client
	defer hb.Detach(client)
	log := h.logger.With(zap.String("client", client.ID))
	log.Info("client connected")

	// Pump state snapshots to the client. Exits when Detach closes Out.
	go func() {
		for data := range client.Out() {
			if err := write(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// Close the connection when displaced so ReadJSON below unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-client.Kicked():
			log.Info("client displaced")
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Info("client disconnected")
			return
		}

		switch msg.Type {
		case "change":
			if msg.Widget == nil {
				writeJSONMsg(wsMessage{Type: "error", Error: "missing widget"}) //nolint:errcheck
				continue
			}
			if err := h.ws.ChangeWidget(*msg.Widget, msg.Value); err != nil {
				writeJSONMsg(wsMessage{Type: "error", Widget: msg.Widget, Error: err.Error()}) //nolint:errcheck
			}
		case "caret":
			if err := h.ws.SetCaret(msg.Path); err != nil {
				writeJSONMsg(wsMessage{Type: "error", Error: err.Error()}) //nolint:errcheck
			}
		case "insert":
			if err := h.ws.InsertAtCaret(); err != nil {
				return
			}
		}
	}
}
