package game

import (
	"github.com/google/uuid"
)

// GenPlayerID mints a short player id for clients that did not bring their
// own. The tail of a v7 uuid is random enough for a casual game.
func GenPlayerID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("Failed to generate UUID: " + err.Error())
	}

	s := id.String()

	return s[len(s)-8:]
}
