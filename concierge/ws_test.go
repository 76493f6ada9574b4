package concierge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riviera/globals"
	"riviera/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func wsTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	router := httprouter.New()
	router.GET("/ws/concierge/:room", WebSocketHandler(hub))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func wsURL(srv *httptest.Server, room, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/concierge/" + room
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func guestToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	srv, _ := wsTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "u1", ""), nil)
	if err == nil {
		t.Fatal("handshake succeeded without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", resp)
	}
}

func TestWebSocketRejectsForeignRoom(t *testing.T) {
	srv, _ := wsTestServer(t)
	token := guestToken(t, "u1", "client")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "u2", token), nil)
	if err == nil {
		t.Fatal("client joined another guest's room")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", resp)
	}
}

func TestWebSocketAllowsOwnRoomAndStaff(t *testing.T) {
	srv, _ := wsTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "u1", guestToken(t, "u1", "client")), nil)
	if err != nil {
		t.Fatalf("guest could not join own room: %v", err)
	}
	conn.Close()

	// concierge staff may monitor any guest room
	conn, _, err = websocket.DefaultDialer.Dial(wsURL(srv, "u1", guestToken(t, "m1", "manager")), nil)
	if err != nil {
		t.Fatalf("manager could not join guest room: %v", err)
	}
	conn.Close()
}
