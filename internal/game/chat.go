// internal/game/chat.go
package game

import (
	"strings"
	"time"

	"github.com/cardtable/wizard/internal/models"
)

const (
	maxChatMessageLen = 200
	maxChatMessages   = 50
)

// PostChat appends a chat message from a seated player. Messages are trimmed
// and capped, and the log keeps only the most recent entries. The caller
// supplies the clock so the engine stays side-effect free.
func PostChat(g *models.GameState, playerID, message string, now time.Time) Result {
	player := g.GetPlayer(playerID)
	if player == nil {
		return rejected(ReasonUnknownPlayer)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return rejected(ReasonEmptyMessage)
	}
	if r := []rune(message); len(r) > maxChatMessageLen {
		message = string(r[:maxChatMessageLen])
	}

	g.ChatMessages = append(g.ChatMessages, models.ChatMessage{
		PlayerName: player.Name,
		Message:    message,
		Timestamp:  now.Format("15:04"),
	})
	if len(g.ChatMessages) > maxChatMessages {
		g.ChatMessages = g.ChatMessages[len(g.ChatMessages)-maxChatMessages:]
	}
	return applied()
}
