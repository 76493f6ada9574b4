package concierge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"riviera/db"
	"riviera/globals"
	"riviera/middleware"
	"riviera/rbac"
	"riviera/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"

	SenderGuest     = "guest"
	SenderConcierge = "concierge"
)

// Message is one entry in the append-only per-guest log.
type Message struct {
	MessageID string `json:"messageid" bson:"messageid"`
	Room      string `json:"room" bson:"room"`
	Sender    string `json:"sender" bson:"sender"`
	Content   string `json:"content" bson:"content"`
	Status    string `json:"status" bson:"status"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func storeMessage(ctx context.Context, m Message) {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.MessagesCollection.InsertOne(dbCtx, m); err != nil {
		log.Printf("concierge: message insert failed: %v", err)
	}
}

// markDelivered flips the guest message once the auto-reply goes out,
// mimicking a staffed chat's read receipts.
func markDelivered(messageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"messageid": messageID},
		bson.M{"$set": bson.M{"status": StatusRead}},
	)
	if err != nil {
		log.Printf("concierge: status update failed: %v", err)
	}
}

func newMessage(room, sender, content, status string) Message {
	return Message{
		MessageID: "m" + utils.GenerateRandomDigitString(16),
		Room:      room,
		Sender:    sender,
		Content:   content,
		Status:    status,
		Timestamp: time.Now().Unix(),
	}
}

// SendMessage is the HTTP fallback for clients without a websocket: it logs
// the guest message, waits the staffed delay, and returns the canned reply.
func SendMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	guestMsg := newMessage(userID, SenderGuest, input.Content, StatusSent)
	storeMessage(r.Context(), guestMsg)

	reply, err := Respond(r.Context(), input.Content)
	if err != nil {
		// client went away during the delay
		return
	}

	markDelivered(guestMsg.MessageID)
	replyMsg := newMessage(userID, SenderConcierge, reply, StatusDelivered)
	storeMessage(r.Context(), replyMsg)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": guestMsg, "reply": replyMsg})
}

// GetLog returns the guest's message log, oldest first.
func GetLog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.MessagesCollection.Find(ctx,
		bson.M{"room": userID},
		options.Find().SetSort(bson.M{"timestamp": 1}),
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var messages []Message
	if err := cur.All(ctx, &messages); err != nil {
		http.Error(w, "Failed to decode messages", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"messages": messages})
}

// WebSocketHandler attaches a guest to their concierge room. The token comes
// in as a query parameter since websocket clients cannot set headers; guests
// may only join their own room, concierge staff may join any. Every inbound
// text triggers the auto-responder; the reply is broadcast to the room after
// the staffed delay.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")
		if room == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}

		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		if room != claims.UserID && !rbac.Can(rbac.Role(claims.Role), rbac.CapManageCustomers) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("concierge ws upgrade error:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: claims.UserID,
		}
		hub.register <- client

		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		guestMsg := newMessage(c.Room, SenderGuest, string(data), StatusSent)
		storeMessage(ctx, guestMsg)
		if out, err := json.Marshal(guestMsg); err == nil {
			hub.Broadcast(c.Room, out)
		}

		// answer asynchronously so the guest can keep typing
		go func(room, content, guestID string) {
			reply, err := Respond(ctx, content)
			if err != nil {
				return
			}
			markDelivered(guestID)
			replyMsg := newMessage(room, SenderConcierge, reply, StatusDelivered)
			storeMessage(ctx, replyMsg)
			if out, err := json.Marshal(replyMsg); err == nil {
				hub.Broadcast(room, out)
			}
		}(c.Room, string(data), guestMsg.MessageID)
	}
}
