// internal/models/chat.go
package models

// ChatMessage is one entry in a game's bounded chat log.
type ChatMessage struct {
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"` // HH:MM, display only
}
