package main

import (
	"time"

	"github.com/itizir/ranked/interaction"
	"github.com/itizir/ranked/leaderboard"
	"github.com/itizir/ranked/ping"
)

// newCommandRouter binds the bot's fixed command set.
func newCommandRouter(store leaderboard.Store, storeTimeout time.Duration) *interaction.Router {
	r := interaction.NewRouter()
	r.Register(ping.ApplicationCommand, ping.Handle)
	r.Register(leaderboard.ApplicationCommand, leaderboard.NewCommand(store, storeTimeout).Handle)
	return r
}
