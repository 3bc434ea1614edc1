package handler

import (
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Browsers cannot set an Authorization header on a websocket upgrade, so the
// token rides in a query parameter and is verified directly.
func (h *Handler) notificationsWS(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		h.Respond(w, Resp{"error": errNoToken.Error()}, http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidJWT
		}
		return []byte(os.Getenv("ACCESS_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.Respond(w, Resp{"error": errInvalidJWT.Error()}, http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		h.Respond(w, Resp{"error": errInvalidJWT.Error()}, http.StatusUnauthorized)
		return
	}

	userIDString, ok := claims["id"].(string)
	if !ok {
		h.Respond(w, Resp{"error": errInvalidJWT.Error()}, http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.services.Fanout.RegisterConnection(userID, conn)
}
