package game

import (
	"fmt"
	"time"
)

type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	IsHost     bool   `json:"isHost"`
	Eliminated bool   `json:"eliminated"`
}

// VotingView is only present while a voting phase runs. It shows aggregate
// progress but never who voted, and never what anyone voted for.
type VotingView struct {
	EndsAt         time.Time `json:"endsAt"`
	VotesSubmitted int       `json:"votesSubmitted"`
	TotalVoters    int       `json:"totalVoters"`
	HasVoted       bool      `json:"hasVoted"`
	CanVote        bool      `json:"canVote"`
	// Options are the ids the viewer may vote for: every active player
	// except the viewer. Skip is always allowed and not listed.
	Options []string `json:"options"`
}

// RoomView is the per-viewer projection of a room. Secret data is redacted
// depending on who asks and on the room state.
type RoomView struct {
	Code             string        `json:"code"`
	State            string        `json:"state"`
	Settings         Settings      `json:"settings"`
	Players          []PlayerView  `json:"players"`
	You              PlayerView    `json:"you"`
	SecretWord       *string       `json:"secretWord"`
	TotalVotings     int           `json:"totalVotings"`
	RemainingVotings int           `json:"remainingVotings"`
	Voting           *VotingView   `json:"voting,omitempty"`
	LastVotingResult *VotingResult `json:"lastVotingResult,omitempty"`
	ImpostorIDs      []string      `json:"impostorIds,omitempty"`
	Winner           string        `json:"winner,omitempty"`
}

// ProjectView renders the room for one requesting player. Non-members get
// ErrForbidden, which is how kicked players find out they are gone.
func ProjectView(r *Room, viewerID string, now time.Time) (RoomView, error) {
	viewer := r.FindPlayer(viewerID)
	if viewer == nil {
		return RoomView{}, fmt.Errorf("%w: not a member of this room", ErrForbidden)
	}

	view := RoomView{
		Code:             r.Code,
		State:            r.State,
		Settings:         r.Settings,
		Players:          make([]PlayerView, 0, len(r.Players)),
		TotalVotings:     r.TotalVotings,
		RemainingVotings: r.RemainingVotings,
		Winner:           r.Winner,
	}

	// The previous tally is a results-view concern; while a new voting
	// phase runs only aggregate progress is shown.
	if r.State != STATE_VOTING {
		view.LastVotingResult = r.LastVotingResult
	}

	for _, p := range r.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Avatar:     p.Avatar,
			IsHost:     r.IsHost(p.ID),
			Eliminated: r.IsEliminated(p.ID),
		}

		view.Players = append(view.Players, pv)

		if p.ID == viewerID {
			view.You = pv
		}
	}

	// Impostors never see the word while the round runs; at reveal it is
	// shown to everyone.
	if r.SecretWord != "" {
		if r.State == STATE_REVEAL || !r.IsImpostor(viewerID) {
			word := r.SecretWord
			view.SecretWord = &word
		}
	}

	// The impostor roster is public only at reveal.
	if r.State == STATE_REVEAL {
		view.ImpostorIDs = r.ImpostorIDs
	}

	if r.State == STATE_VOTING && r.VotingEndsAt != nil {
		view.Voting = projectVoting(r, viewerID, now)
	}

	return view, nil
}

func projectVoting(r *Room, viewerID string, now time.Time) *VotingView {
	activeIDs := r.ActivePlayerIDs()

	voting := &VotingView{
		EndsAt:         *r.VotingEndsAt,
		VotesSubmitted: len(r.Votes),
		TotalVoters:    len(activeIDs),
		HasVoted:       r.HasVoted(viewerID),
	}

	viewerActive := !r.IsEliminated(viewerID)

	voting.CanVote = viewerActive &&
		!voting.HasVoted &&
		now.Before(*r.VotingEndsAt)

	if viewerActive {
		voting.Options = make([]string, 0, len(activeIDs))
		for _, id := range activeIDs {
			if id != viewerID {
				voting.Options = append(voting.Options, id)
			}
		}
	}

	return voting
}
