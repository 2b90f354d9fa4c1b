package dto

import "word-impostor-be/internal/service/game"

type CreateRoomRequest struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	PlayerAvatar string `json:"playerAvatar,omitempty"`
}

type CreateRoomResponse struct {
	RoomCode string        `json:"roomCode"`
	View     game.RoomView `json:"view"`
}
