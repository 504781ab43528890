package snail

import (
	"github.com/snailpad/snail-go/snail_game"
	"github.com/snailpad/snail-go/snail_launch"
)

// NewGame creates the game controller.
//
// Example:
//
// game := NewGame(store, bank, nil, nil)
//
// game.Initialize(owner, params)
//
// game.TouchSnail()
var NewGame = snail_game.NewProgram

// NewLaunch creates the launch controller.
//
// Example:
//
// launch := NewLaunch(store, bank, nil, nil)
//
// launch.Initialize(owner, snailMint, mintAuthority)
//
// launch.Contribute(contributor, amount)
var NewLaunch = snail_launch.NewProgram
