package service

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

const (
	// Visually ambiguous glyphs (0/O, 1/I) are excluded so codes survive
	// being read out loud across a table.
	ROOM_CODE_ALPHABET = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ROOM_CODE_LENGTH   = 5

	// How often a fresh code is tried against the store before giving up.
	CODE_GEN_MAX_ATTEMPTS = 10
)

const roomKeyPrefix = "room:"

func roomKey(code string) string {
	return roomKeyPrefix + code
}

func randomRoomCode() string {
	code := make([]byte, ROOM_CODE_LENGTH)

	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(ROOM_CODE_ALPHABET))))
		if err != nil {
			// fall back to math/rand if crypto fails
			code[i] = ROOM_CODE_ALPHABET[rand.IntN(len(ROOM_CODE_ALPHABET))]
			continue
		}

		code[i] = ROOM_CODE_ALPHABET[n.Int64()]
	}

	return string(code)
}
