package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

// memoryGame keeps games in process memory; they are lost on restart.
// Updates to one key are serialized, different keys proceed independently.
type memoryGame struct {
	mu    sync.Mutex
	games map[string]entity.Game
	locks map[string]*sync.Mutex
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
		locks: make(map[string]*sync.Mutex),
	}
}

func (that *memoryGame) GetByKey(_ context.Context, key string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot(key), nil
}

func (that *memoryGame) Update(_ context.Context, key string, fn UpdateFunc) (*entity.Game, error) {
	keyLock := that.keyLock(key)
	keyLock.Lock()
	defer keyLock.Unlock()

	that.mu.Lock()
	game := that.snapshot(key)
	that.mu.Unlock()

	if err := fn(game); err != nil {
		return nil, err
	}

	that.mu.Lock()
	that.games[key] = *game
	that.mu.Unlock()

	updated := *game
	return &updated, nil
}

// snapshot returns a copy so callers never touch the stored value. Caller holds mu.
func (that *memoryGame) snapshot(key string) *entity.Game {
	game, ok := that.games[key]
	if !ok {
		return entity.NewGame()
	}

	return &game
}

func (that *memoryGame) keyLock(key string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	keyLock, ok := that.locks[key]
	if !ok {
		keyLock = &sync.Mutex{}
		that.locks[key] = keyLock
	}

	return keyLock
}
