package shuttle

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// refreshInterval matches the tracker screen's 10-second refresh policy.
const refreshInterval = 10 * time.Second

type liveUpdate struct {
	Schedule []Departure `json:"schedule"`
	Position Position    `json:"position"`
	SentAt   int64       `json:"sentAt"`
}

// Live streams the simulated schedule and position every 10 seconds until
// the client hangs up.
func Live(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("shuttle ws upgrade error:", err)
		return
	}
	defer conn.Close()

	// drain client frames so pings and close frames are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		now := time.Now()
		update := liveUpdate{
			Schedule: provider.Schedule(now),
			Position: provider.Position(now),
			SentAt:   now.Unix(),
		}
		data, err := json.Marshal(update)
		if err != nil {
			log.Println("shuttle ws marshal error:", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}
}
