// Package socket pushes match events to connected clients. Each client
// joins a room named after its user id; when a mutual like completes, both
// members' rooms receive a "matched" event.
package socket

import (
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog"
)

// NewServer initializes and returns a new Socket.IO server
func NewServer(logger zerolog.Logger) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		logger.Debug().Str("socketId", s.ID()).Msg("socket connected")
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, userID string) {
		if userID == "" {
			logger.Warn().Str("socketId", s.ID()).Msg("join without userId")
			return
		}
		s.Join(userRoom(userID))
		logger.Debug().Str("socketId", s.ID()).Str("userId", userID).Msg("joined notification room")
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		logger.Warn().Err(err).Msg("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		logger.Debug().Str("socketId", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	return server
}

// MatchNotifier broadcasts match events over the socket server.
type MatchNotifier struct {
	Server *socketio.Server
	Logger zerolog.Logger
}

// NotifyMatch tells both members of a new match that it exists.
func (n *MatchNotifier) NotifyMatch(matchID, userAID, userBID string) {
	payload := map[string]string{"matchId": matchID, "userAId": userAID, "userBId": userBID}
	for _, userID := range []string{userAID, userBID} {
		n.Server.BroadcastToRoom("/", userRoom(userID), "matched", payload)
	}
	n.Logger.Debug().Str("matchId", matchID).Msg("match event broadcast")
}

func userRoom(userID string) string {
	return "user:" + userID
}
