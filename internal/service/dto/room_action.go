package dto

// Room actions a client may request once a room exists.
const (
	ACTION_JOIN         = "join"
	ACTION_START        = "start"
	ACTION_START_VOTING = "startVoting"
	ACTION_VOTE         = "vote"
	ACTION_REVEAL       = "reveal"
	ACTION_NEXT_ROUND   = "nextRound"
	ACTION_KICK         = "kick"
	ACTION_LEAVE        = "leave"
)

// RoomActionRequest is the flat body of POST /rooms/{code}. Which of the
// optional fields matter depends on Action; the service dispatches on it
// through an exhaustive switch.
type RoomActionRequest struct {
	Action   string `json:"action"`
	PlayerID string `json:"playerId"`

	// join
	PlayerName   string `json:"playerName,omitempty"`
	PlayerAvatar string `json:"playerAvatar,omitempty"`

	// kick and vote; for vote the sentinel "skip" is allowed
	TargetID string `json:"targetId,omitempty"`

	// start
	NumImpostors          int    `json:"numImpostors,omitempty"`
	Category              string `json:"category,omitempty"`
	MaxVotings            int    `json:"maxVotings,omitempty"`
	VotingDurationSeconds int    `json:"votingDurationSeconds,omitempty"`
}
