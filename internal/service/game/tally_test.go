package game

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestTallyVotesIsDeterministic(t *testing.T) {
	votes := map[string]string{
		"a": "b",
		"b": VOTE_SKIP,
		"c": "b",
		"d": "a",
	}
	active := []string{"a", "b", "c", "d", "e"}

	first := tallyVotes(votes, active)
	second := tallyVotes(votes, active)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("tally not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	if first.EliminatedPlayerID != "b" {
		t.Fatalf("want b eliminated, got %q", first.EliminatedPlayerID)
	}
	if first.VoteCounts["b"] != 2 || first.VoteCounts["a"] != 1 {
		t.Fatalf("wrong counts: %v", first.VoteCounts)
	}
	// b skipped explicitly, e never voted; both count as skips.
	if first.SkipCount != 2 {
		t.Fatalf("want 2 skips, got %d", first.SkipCount)
	}
}

func TestTallyVotesTieEliminatesNobody(t *testing.T) {
	votes := map[string]string{
		"a": "b",
		"b": "a",
		"c": "b",
		"d": "a",
	}

	result := tallyVotes(votes, []string{"a", "b", "c", "d"})

	if !result.IsTie {
		t.Fatal("two targets at max votes must be a tie")
	}
	if result.EliminatedPlayerID != "" {
		t.Fatalf("tie must not eliminate, got %q", result.EliminatedPlayerID)
	}
	if result.VoteCounts["a"] != 2 || result.VoteCounts["b"] != 2 {
		t.Fatalf("wrong counts: %v", result.VoteCounts)
	}
}

func TestTallyVotesAllSkipIsTie(t *testing.T) {
	result := tallyVotes(map[string]string{}, []string{"a", "b", "c"})

	if !result.IsTie {
		t.Fatal("no target votes must be a tie")
	}
	if result.SkipCount != 3 {
		t.Fatalf("want 3 skips, got %d", result.SkipCount)
	}
}

// Ballots of eliminated players are not part of the active set and must be
// ignored by the tally.
func TestTallyVotesIgnoresInactiveVoters(t *testing.T) {
	votes := map[string]string{
		"a":     "b",
		"ghost": "b",
	}

	result := tallyVotes(votes, []string{"a", "b", "c"})

	if result.VoteCounts["b"] != 1 {
		t.Fatalf("inactive ballot was counted: %v", result.VoteCounts)
	}
}

func TestFinalizeDecrementsBudgetOnTie(t *testing.T) {
	now := time.Now()

	room := startedRoom(t, 4, 1, 3)
	if err := room.StartVoting("player1", now); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	// 2:2 between player2 and player3.
	votePairs := map[string]string{
		"player1": "player3",
		"player2": "player3",
		"player3": "player2",
		"player4": "player2",
	}
	for voter, target := range votePairs {
		if err := room.Vote(voter, target, now); err != nil {
			t.Fatalf("vote by %s failed: %v", voter, err)
		}
	}

	if room.State != STATE_IN_PROGRESS {
		t.Fatalf("tie round should continue the game, state=%s", room.State)
	}
	if room.LastVotingResult == nil || !room.LastVotingResult.IsTie {
		t.Fatalf("want tie result, got %+v", room.LastVotingResult)
	}
	if len(room.EliminatedPlayerIDs) != 0 {
		t.Fatalf("tie eliminated someone: %v", room.EliminatedPlayerIDs)
	}
	if room.LastVotingResult.VoteCounts["player2"] != 2 || room.LastVotingResult.VoteCounts["player3"] != 2 {
		t.Fatalf("wrong counts: %v", room.LastVotingResult.VoteCounts)
	}
	if room.RemainingVotings != 2 {
		t.Fatalf("tie must still spend the budget, got %d", room.RemainingVotings)
	}
}

func TestFinalizeEliminatingLastImpostorWinsCrewmates(t *testing.T) {
	now := time.Now()

	room := startedRoom(t, 4, 1, 3)
	impostorID := room.ImpostorIDs[0]

	if err := room.StartVoting("player1", now); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	for _, p := range room.Players {
		target := impostorID
		if p.ID == impostorID {
			target = VOTE_SKIP
		}
		if err := room.Vote(p.ID, target, now); err != nil {
			t.Fatalf("vote by %s failed: %v", p.ID, err)
		}
	}

	if room.Winner != WINNER_CREWMATES {
		t.Fatalf("want winner %s, got %q", WINNER_CREWMATES, room.Winner)
	}
	if room.State != STATE_REVEAL {
		t.Fatalf("decided game must reveal, state=%s", room.State)
	}
	if !room.IsEliminated(impostorID) {
		t.Fatal("impostor not eliminated")
	}
	// Budget was 3; the win must not depend on spending it.
	if room.RemainingVotings != 2 {
		t.Fatalf("want 2 votings left, got %d", room.RemainingVotings)
	}
}

func TestFinalizeExhaustedBudgetWinsImpostors(t *testing.T) {
	now := time.Now()

	room := startedRoom(t, 4, 1, 1)
	impostorID := room.ImpostorIDs[0]

	if err := room.StartVoting("player1", now); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	// Everyone skips; the single voting round is spent without a kill.
	for _, p := range room.Players {
		if err := room.Vote(p.ID, VOTE_SKIP, now); err != nil {
			t.Fatalf("vote by %s failed: %v", p.ID, err)
		}
	}

	if room.Winner != WINNER_IMPOSTORS {
		t.Fatalf("want winner %s, got %q", WINNER_IMPOSTORS, room.Winner)
	}
	if room.State != STATE_REVEAL {
		t.Fatalf("decided game must reveal, state=%s", room.State)
	}
	if room.IsEliminated(impostorID) {
		t.Fatal("nobody should have been eliminated")
	}
}

func TestFinalizeTriggersWhenAllActiveVoted(t *testing.T) {
	now := time.Now()

	room := startedRoom(t, 3, 1, 2)
	if err := room.StartVoting("player1", now); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	if err := room.Vote("player1", VOTE_SKIP, now); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if err := room.Vote("player2", VOTE_SKIP, now); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if room.State != STATE_VOTING {
		t.Fatalf("voting must stay open until the last ballot, state=%s", room.State)
	}

	if err := room.Vote("player3", VOTE_SKIP, now); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if room.State == STATE_VOTING {
		t.Fatal("last ballot must finalize the voting")
	}
}

func TestVoteAfterDeadlineFinalizesAndDropsBallot(t *testing.T) {
	start := time.Now()

	room := startedRoom(t, 3, 1, 2)
	if err := room.StartVoting("player1", start); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	late := room.VotingEndsAt.Add(time.Second)

	err := room.Vote("player2", "player3", late)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("late ballot: want validation error, got: %v", err)
	}

	if room.State == STATE_VOTING {
		t.Fatal("late ballot must finalize the expired voting")
	}
	if room.LastVotingResult == nil {
		t.Fatal("finalization did not record a result")
	}
	if room.LastVotingResult.VoteCounts["player3"] != 0 {
		t.Fatalf("late ballot was counted: %v", room.LastVotingResult.VoteCounts)
	}
}

func TestMaybeFinalizeVoting(t *testing.T) {
	start := time.Now()

	room := startedRoom(t, 3, 1, 2)

	if room.MaybeFinalizeVoting(start) {
		t.Fatal("nothing to finalize outside a voting phase")
	}

	if err := room.StartVoting("player1", start); err != nil {
		t.Fatalf("startVoting failed: %v", err)
	}

	if room.MaybeFinalizeVoting(start.Add(time.Second)) {
		t.Fatal("open voting with missing ballots must not finalize")
	}

	expired := room.VotingEndsAt.Add(time.Second)

	if !room.MaybeFinalizeVoting(expired) {
		t.Fatal("expired voting must finalize")
	}
	if room.LastVotingResult == nil || !room.LastVotingResult.IsTie {
		t.Fatalf("all-absent vote must be a tie, got %+v", room.LastVotingResult)
	}
	if room.LastVotingResult.SkipCount != 3 {
		t.Fatalf("want 3 skips, got %d", room.LastVotingResult.SkipCount)
	}
}
