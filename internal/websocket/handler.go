package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gungunaswani/GroomifyAI/internal/services/practice"
)

// SnapshotSource resolves the account behind a request and its current
// recorder snapshot. ok is false when the request is not authenticated.
type SnapshotSource func(r *http.Request) (accountID uuid.UUID, snap practice.Snapshot, ok bool)

// HandleStream returns an HTTP handler that upgrades connections to WebSocket
// and runs them as Hub clients.
func HandleStream(hub *Hub, source SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, snap, ok := source(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		NewClient(hub, conn, accountID).Run(r.Context(), snap)
	}
}
