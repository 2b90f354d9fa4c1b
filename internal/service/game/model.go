package game

import "time"

// A room moves lobby -> in_progress -> voting -> reveal and back to lobby.
// Voting may loop back into in_progress until a winner is decided.
const (
	STATE_LOBBY       = "lobby"
	STATE_IN_PROGRESS = "in_progress"
	STATE_VOTING      = "voting"
	STATE_REVEAL      = "reveal"
)

const (
	WINNER_CREWMATES = "crewmates"
	WINNER_IMPOSTORS = "impostors"
)

// VOTE_SKIP is the sentinel target for an explicit skip vote. Players who
// never vote before the deadline are tallied the same way.
const VOTE_SKIP = "skip"

const MIN_PLAYERS = 3

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Settings are mutable only while the room sits in the lobby; Start copies
// them into the room for the duration of the round.
type Settings struct {
	NumImpostors          int    `json:"numImpostors"`
	Category              string `json:"category"`
	MaxVotings            int    `json:"maxVotings"`
	VotingDurationSeconds int    `json:"votingDurationSeconds"`
}

// VotingResult is the tally outcome of one finished voting phase. It is kept
// on the room until the next voting phase so clients can render the result.
type VotingResult struct {
	EliminatedPlayerID string         `json:"eliminatedPlayerId,omitempty"`
	IsTie              bool           `json:"isTie"`
	VoteCounts         map[string]int `json:"voteCounts"`
	SkipCount          int            `json:"skipCount"`
}

// Room is the authoritative state of one game instance. It round-trips
// through the store as a single JSON document, so every field that matters
// is exported.
type Room struct {
	Code                string            `json:"code"`
	HostID              string            `json:"hostId"`
	Players             []Player          `json:"players"`
	State               string            `json:"state"`
	Settings            Settings          `json:"settings"`
	SecretWord          string            `json:"secretWord,omitempty"`
	ImpostorIDs         []string          `json:"impostorIds,omitempty"`
	EliminatedPlayerIDs []string          `json:"eliminatedPlayerIds,omitempty"`
	Votes               map[string]string `json:"votes,omitempty"`
	VotingEndsAt        *time.Time        `json:"votingEndsAt,omitempty"`
	TotalVotings        int               `json:"totalVotings"`
	RemainingVotings    int               `json:"remainingVotings"`
	LastVotingResult    *VotingResult     `json:"lastVotingResult,omitempty"`
	Winner              string            `json:"winner,omitempty"`
}

func (r *Room) FindPlayer(playerID string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return &r.Players[i]
		}
	}

	return nil
}

func (r *Room) IsMember(playerID string) bool {
	return r.FindPlayer(playerID) != nil
}

func (r *Room) IsHost(playerID string) bool {
	return playerID == r.HostID
}

func (r *Room) IsEliminated(playerID string) bool {
	for _, id := range r.EliminatedPlayerIDs {
		if id == playerID {
			return true
		}
	}

	return false
}

func (r *Room) IsImpostor(playerID string) bool {
	for _, id := range r.ImpostorIDs {
		if id == playerID {
			return true
		}
	}

	return false
}

// ActivePlayerIDs returns the ids of players still eligible to vote and to
// be voted for, in join order.
func (r *Room) ActivePlayerIDs() []string {
	active := make([]string, 0, len(r.Players))

	for _, p := range r.Players {
		if !r.IsEliminated(p.ID) {
			active = append(active, p.ID)
		}
	}

	return active
}

func (r *Room) HasVoted(playerID string) bool {
	_, ok := r.Votes[playerID]
	return ok
}

// AliveImpostorIDs returns the impostors not yet eliminated. Stale ids of
// players who left the room are kept on purpose; they still count here.
func (r *Room) AliveImpostorIDs() []string {
	alive := make([]string, 0, len(r.ImpostorIDs))

	for _, id := range r.ImpostorIDs {
		if !r.IsEliminated(id) {
			alive = append(alive, id)
		}
	}

	return alive
}
