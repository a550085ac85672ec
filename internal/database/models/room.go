package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Room struct {
	bun.BaseModel

	ID        uint `bun:",pk,autoincrement"`
	Token     string
	CreatedAt time.Time
	// Cached view of the member names currently connected; the hub owns
	// the authoritative copy.
	ActiveUsers StringList
}
