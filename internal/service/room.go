package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"word-impostor-be/internal/service/dto"
	"word-impostor-be/internal/service/game"
	"word-impostor-be/internal/store"

	"go.uber.org/zap"
)

// RoomService drives every room mutation as a read-modify-write against the
// store. There is no per-room locking; concurrent writers race and the last
// one wins, which is acceptable for a casual party game.
type RoomService struct {
	store store.Store
	ttl   time.Duration

	now func() time.Time
}

func NewRoomService(st store.Store, ttl time.Duration) *RoomService {
	return &RoomService{
		store: st,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (rs *RoomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (dto.CreateRoomResponse, error) {
	if req.PlayerName == "" {
		return dto.CreateRoomResponse{}, fmt.Errorf("%w: player name must not be empty", game.ErrValidation)
	}

	playerID := req.PlayerID
	if playerID == "" {
		playerID = game.GenPlayerID()
	}

	code, err := rs.generateRoomCode(ctx)
	if err != nil {
		return dto.CreateRoomResponse{}, err
	}

	host := game.Player{
		ID:     playerID,
		Name:   req.PlayerName,
		Avatar: req.PlayerAvatar,
	}

	room := game.NewRoom(code, host)

	if err := rs.saveRoom(ctx, room); err != nil {
		return dto.CreateRoomResponse{}, err
	}

	zap.S().Infof("room %s created by %s", code, req.PlayerName)

	view, err := game.ProjectView(room, playerID, rs.now())
	if err != nil {
		return dto.CreateRoomResponse{}, err
	}

	return dto.CreateRoomResponse{
		RoomCode: code,
		View:     view,
	}, nil
}

// generateRoomCode retries a handful of random codes against the store; a
// collision among live rooms is unlikely but possible.
func (rs *RoomService) generateRoomCode(ctx context.Context) (string, error) {
	for range CODE_GEN_MAX_ATTEMPTS {
		code := randomRoomCode()

		exists, err := rs.store.Exists(ctx, roomKey(code))
		if err != nil {
			return "", fmt.Errorf("checking room code: %w", err)
		}

		if !exists {
			return code, nil
		}

		zap.S().Debugf("room code %s collided, retrying", code)
	}

	return "", errors.New("could not find a free room code")
}

// GetRoomView loads the room, opportunistically finalizes an expired voting
// phase and projects the view for the requesting player. This poll is the
// only place besides Vote where a voting deadline takes effect.
func (rs *RoomService) GetRoomView(ctx context.Context, code, playerID string) (game.RoomView, error) {
	room, err := rs.loadRoom(ctx, code)
	if err != nil {
		return game.RoomView{}, err
	}

	if room.MaybeFinalizeVoting(rs.now()) {
		zap.S().Infof("room %s: voting finalized on poll", code)

		if err := rs.saveRoom(ctx, room); err != nil {
			return game.RoomView{}, err
		}
	}

	return game.ProjectView(room, playerID, rs.now())
}

// HandleAction dispatches one room action. The returned view is nil for
// leave, where the requester no longer has any visibility.
func (rs *RoomService) HandleAction(ctx context.Context, code string, req dto.RoomActionRequest) (*game.RoomView, error) {
	room, err := rs.loadRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	now := rs.now()

	switch req.Action {
	case dto.ACTION_JOIN:
		playerID := req.PlayerID
		if playerID == "" {
			playerID = game.GenPlayerID()
		}

		err = room.Join(game.Player{
			ID:     playerID,
			Name:   req.PlayerName,
			Avatar: req.PlayerAvatar,
		})
		if err != nil {
			return nil, err
		}

		return rs.commit(ctx, room, playerID, now)

	case dto.ACTION_START:
		err = room.Start(req.PlayerID, game.Settings{
			NumImpostors:          req.NumImpostors,
			Category:              req.Category,
			MaxVotings:            req.MaxVotings,
			VotingDurationSeconds: req.VotingDurationSeconds,
		})
		if err != nil {
			return nil, err
		}

		zap.S().Infof("room %s: game started with %d impostors", code, req.NumImpostors)

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_START_VOTING:
		if err = room.StartVoting(req.PlayerID, now); err != nil {
			return nil, err
		}

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_VOTE:
		// A poll may not have come in since the deadline, so the expired
		// phase is finalized here and the late ballot is dropped.
		if room.MaybeFinalizeVoting(now) {
			zap.S().Infof("room %s: voting finalized on late ballot", code)

			if err = rs.saveRoom(ctx, room); err != nil {
				return nil, err
			}

			return nil, fmt.Errorf("%w: the voting deadline has passed", game.ErrValidation)
		}

		if err = room.Vote(req.PlayerID, req.TargetID, now); err != nil {
			return nil, err
		}

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_REVEAL:
		if err = room.Reveal(req.PlayerID); err != nil {
			return nil, err
		}

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_NEXT_ROUND:
		if err = room.NextRound(req.PlayerID); err != nil {
			return nil, err
		}

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_KICK:
		if err = room.Kick(req.PlayerID, req.TargetID); err != nil {
			return nil, err
		}

		zap.S().Infof("room %s: player %s kicked", code, req.TargetID)

		return rs.commit(ctx, room, req.PlayerID, now)

	case dto.ACTION_LEAVE:
		deleted, err := room.Leave(req.PlayerID)
		if err != nil {
			return nil, err
		}

		if deleted {
			zap.S().Infof("room %s: host left, deleting room", code)

			if err := rs.store.Delete(ctx, roomKey(code)); err != nil {
				return nil, fmt.Errorf("deleting room: %w", err)
			}

			return nil, nil
		}

		if err := rs.saveRoom(ctx, room); err != nil {
			return nil, err
		}

		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", game.ErrValidation, req.Action)
	}
}

// commit persists the mutated room and projects the actor's view. Nothing
// is persisted when a guard failed earlier, so a transition either commits
// as a whole or not at all.
func (rs *RoomService) commit(ctx context.Context, room *game.Room, playerID string, now time.Time) (*game.RoomView, error) {
	if err := rs.saveRoom(ctx, room); err != nil {
		return nil, err
	}

	view, err := game.ProjectView(room, playerID, now)
	if err != nil {
		return nil, err
	}

	return &view, nil
}

func (rs *RoomService) loadRoom(ctx context.Context, code string) (*game.Room, error) {
	raw, err := rs.store.Get(ctx, roomKey(code))
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: room %s does not exist", game.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("loading room: %w", err)
	}

	var room game.Room

	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		return nil, fmt.Errorf("decoding room %s: %w", code, err)
	}

	return &room, nil
}

// saveRoom writes the full record back and refreshes its TTL, so a room
// lives a fixed time past its last write regardless of game progress.
func (rs *RoomService) saveRoom(ctx context.Context, room *game.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encoding room %s: %w", room.Code, err)
	}

	if err := rs.store.Set(ctx, roomKey(room.Code), string(raw), rs.ttl); err != nil {
		return fmt.Errorf("saving room %s: %w", room.Code, err)
	}

	return nil
}

// Ping reports store connectivity for the health endpoint.
func (rs *RoomService) Ping(ctx context.Context) error {
	return rs.store.Ping(ctx)
}
