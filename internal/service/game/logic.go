package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewRoom builds a fresh lobby with the creator as host and sole player.
func NewRoom(code string, host Player) *Room {
	return &Room{
		Code:    code,
		HostID:  host.ID,
		Players: []Player{host},
		State:   STATE_LOBBY,
		Settings: Settings{
			NumImpostors:          1,
			MaxVotings:            3,
			VotingDurationSeconds: 60,
		},
	}
}

// Join adds a player, or updates name/avatar when the id is already present
// so a rejoin after a dropped connection is idempotent. Joining is allowed
// in every state; a mid-round joiner is a crewmate for the running round.
func (r *Room) Join(p Player) error {
	if p.ID == "" {
		return fmt.Errorf("%w: player id must not be empty", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: player name must not be empty", ErrValidation)
	}

	if existing := r.FindPlayer(p.ID); existing != nil {
		existing.Name = p.Name
		if p.Avatar != "" {
			existing.Avatar = p.Avatar
		}
		return nil
	}

	r.Players = append(r.Players, p)

	return nil
}

// Kick removes a player from the lobby. Only the host may kick, and only
// while no round is running.
func (r *Room) Kick(actorID, targetID string) error {
	if !r.IsHost(actorID) {
		return fmt.Errorf("%w: only the host can kick players", ErrForbidden)
	}
	if r.State != STATE_LOBBY {
		return fmt.Errorf("%w: players can only be kicked in the lobby", ErrValidation)
	}
	if targetID == r.HostID {
		return fmt.Errorf("%w: the host cannot kick itself", ErrValidation)
	}
	if !r.IsMember(targetID) {
		return fmt.Errorf("%w: player %s is not in the room", ErrNotFound, targetID)
	}

	r.removePlayer(targetID)

	return nil
}

// Leave removes the actor from the room. When the host leaves the whole
// room is gone; the caller must delete the record when deleted is true.
func (r *Room) Leave(actorID string) (deleted bool, err error) {
	if !r.IsMember(actorID) {
		return false, fmt.Errorf("%w: not a member of this room", ErrForbidden)
	}

	if r.IsHost(actorID) {
		return true, nil
	}

	r.removePlayer(actorID)

	return false, nil
}

// removePlayer drops the player entry only. Ids already captured in
// ImpostorIDs, EliminatedPlayerIDs or Votes are left alone; the tally and
// the projector treat them as historical data.
func (r *Room) removePlayer(playerID string) {
	players := r.Players[:0]

	for _, p := range r.Players {
		if p.ID != playerID {
			players = append(players, p)
		}
	}

	r.Players = players
}

// Start begins a round: it fixes the settings, draws the secret word and
// secretly assigns the impostors.
func (r *Room) Start(actorID string, s Settings) error {
	if !r.IsHost(actorID) {
		return fmt.Errorf("%w: only the host can start the game", ErrForbidden)
	}
	if r.State != STATE_LOBBY {
		return fmt.Errorf("%w: the game has already started", ErrValidation)
	}
	if len(r.Players) < MIN_PLAYERS {
		return fmt.Errorf("%w: at least %d players are required", ErrValidation, MIN_PLAYERS)
	}
	if s.NumImpostors < 1 || s.NumImpostors >= len(r.Players) {
		return fmt.Errorf(
			"%w: impostor count must be between 1 and %d",
			ErrValidation, len(r.Players)-1,
		)
	}
	if s.MaxVotings < 1 {
		return fmt.Errorf("%w: at least one voting round is required", ErrValidation)
	}
	if s.VotingDurationSeconds <= 0 {
		s.VotingDurationSeconds = 60
	}

	r.Settings = s
	r.SecretWord = RandomWord(s.Category)
	r.ImpostorIDs = r.drawImpostors(s.NumImpostors)
	r.EliminatedPlayerIDs = nil
	r.Votes = nil
	r.VotingEndsAt = nil
	r.TotalVotings = s.MaxVotings
	r.RemainingVotings = s.MaxVotings
	r.LastVotingResult = nil
	r.Winner = ""
	r.State = STATE_IN_PROGRESS

	return nil
}

func (r *Room) drawImpostors(count int) []string {
	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}

	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	return ids[:count]
}

// StartVoting opens a timed voting phase.
func (r *Room) StartVoting(actorID string, now time.Time) error {
	if !r.IsHost(actorID) {
		return fmt.Errorf("%w: only the host can start a voting", ErrForbidden)
	}
	if r.State != STATE_IN_PROGRESS {
		return fmt.Errorf("%w: voting can only start during a running round", ErrValidation)
	}
	if r.Winner != "" {
		return fmt.Errorf("%w: the game is already decided", ErrValidation)
	}
	if r.RemainingVotings <= 0 {
		return fmt.Errorf("%w: no voting rounds left", ErrValidation)
	}
	if len(r.ActivePlayerIDs()) < MIN_PLAYERS {
		return fmt.Errorf("%w: at least %d active players are required to vote", ErrValidation, MIN_PLAYERS)
	}

	endsAt := now.Add(time.Duration(r.Settings.VotingDurationSeconds) * time.Second)

	r.Votes = make(map[string]string)
	r.VotingEndsAt = &endsAt
	r.State = STATE_VOTING

	return nil
}

// Vote records one ballot. If the deadline has already passed the phase is
// finalized instead and the late ballot is dropped. When the last active
// player votes the phase finalizes immediately.
func (r *Room) Vote(voterID, targetID string, now time.Time) error {
	if r.State != STATE_VOTING {
		return fmt.Errorf("%w: there is no voting in progress", ErrValidation)
	}
	if !r.IsMember(voterID) {
		return fmt.Errorf("%w: not a member of this room", ErrForbidden)
	}

	if r.votingExpired(now) {
		r.finalizeVoting()
		return fmt.Errorf("%w: the voting deadline has passed", ErrValidation)
	}

	if r.IsEliminated(voterID) {
		return fmt.Errorf("%w: eliminated players cannot vote", ErrValidation)
	}
	if r.HasVoted(voterID) {
		return fmt.Errorf("%w: you have already voted", ErrValidation)
	}

	if targetID != VOTE_SKIP {
		if targetID == voterID {
			return fmt.Errorf("%w: you cannot vote for yourself", ErrValidation)
		}
		if !r.IsMember(targetID) {
			return fmt.Errorf("%w: player %s is not in the room", ErrNotFound, targetID)
		}
		if r.IsEliminated(targetID) {
			return fmt.Errorf("%w: player %s is already eliminated", ErrValidation, targetID)
		}
	}

	if r.Votes == nil {
		r.Votes = make(map[string]string)
	}
	r.Votes[voterID] = targetID

	if len(r.Votes) >= len(r.ActivePlayerIDs()) {
		r.finalizeVoting()
	}

	return nil
}

func (r *Room) votingExpired(now time.Time) bool {
	return r.VotingEndsAt != nil && now.After(*r.VotingEndsAt)
}

// MaybeFinalizeVoting closes the voting phase when the deadline has passed
// or every active player has voted. It is called opportunistically on every
// read, which is the only finalization trigger; there is no scheduler.
// Reports whether the room changed.
func (r *Room) MaybeFinalizeVoting(now time.Time) bool {
	if r.State != STATE_VOTING {
		return false
	}

	if !r.votingExpired(now) && len(r.Votes) < len(r.ActivePlayerIDs()) {
		return false
	}

	r.finalizeVoting()

	return true
}

// finalizeVoting tallies the ballots, applies the elimination, spends one
// voting round and decides the winner if there is one.
func (r *Room) finalizeVoting() {
	result := tallyVotes(r.Votes, r.ActivePlayerIDs())

	if result.EliminatedPlayerID != "" && !r.IsEliminated(result.EliminatedPlayerID) {
		r.EliminatedPlayerIDs = append(r.EliminatedPlayerIDs, result.EliminatedPlayerID)
	}

	if r.RemainingVotings > 0 {
		r.RemainingVotings--
	}

	switch {
	case len(r.AliveImpostorIDs()) == 0:
		r.Winner = WINNER_CREWMATES
	case r.RemainingVotings == 0:
		r.Winner = WINNER_IMPOSTORS
	}

	r.LastVotingResult = result
	r.Votes = nil
	r.VotingEndsAt = nil

	if r.Winner != "" {
		r.State = STATE_REVEAL
	} else {
		r.State = STATE_IN_PROGRESS
	}
}

// tallyVotes is a pure function over the ballots of the given active
// players. Missing ballots count as skips. A single highest-voted target is
// eliminated; any tie (including all-skip) eliminates nobody.
func tallyVotes(votes map[string]string, activeIDs []string) *VotingResult {
	result := &VotingResult{
		VoteCounts: make(map[string]int),
	}

	for _, voterID := range activeIDs {
		target, ok := votes[voterID]
		if !ok || target == VOTE_SKIP {
			result.SkipCount++
			continue
		}

		result.VoteCounts[target]++
	}

	maxVotes := 0
	for _, count := range result.VoteCounts {
		if count > maxVotes {
			maxVotes = count
		}
	}

	if maxVotes == 0 {
		result.IsTie = true
		return result
	}

	var topTargets []string
	for targetID, count := range result.VoteCounts {
		if count == maxVotes {
			topTargets = append(topTargets, targetID)
		}
	}

	if len(topTargets) > 1 {
		result.IsTie = true
		return result
	}

	result.EliminatedPlayerID = topTargets[0]

	return result
}

// Reveal ends the round without a tally, exposing word and impostors.
func (r *Room) Reveal(actorID string) error {
	if !r.IsHost(actorID) {
		return fmt.Errorf("%w: only the host can reveal the word", ErrForbidden)
	}
	if r.State != STATE_IN_PROGRESS {
		return fmt.Errorf("%w: there is no round to reveal", ErrValidation)
	}

	r.Votes = nil
	r.VotingEndsAt = nil
	r.State = STATE_REVEAL

	return nil
}

// NextRound clears all round data and returns the room to the lobby.
func (r *Room) NextRound(actorID string) error {
	if !r.IsHost(actorID) {
		return fmt.Errorf("%w: only the host can start the next round", ErrForbidden)
	}
	if r.State == STATE_LOBBY {
		return fmt.Errorf("%w: the room is already in the lobby", ErrValidation)
	}

	r.SecretWord = ""
	r.ImpostorIDs = nil
	r.EliminatedPlayerIDs = nil
	r.Votes = nil
	r.VotingEndsAt = nil
	r.RemainingVotings = r.Settings.MaxVotings
	r.LastVotingResult = nil
	r.Winner = ""
	r.State = STATE_LOBBY

	return nil
}
