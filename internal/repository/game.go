package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

// UpdateFunc mutates a game in place. Returning an error discards the mutation.
type UpdateFunc func(game *entity.Game) error

type GameRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.Game, error)
	Update(ctx context.Context, key string, fn UpdateFunc) (*entity.Game, error)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - stores one game per key in redis. A zero ttl keeps games until overwritten.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) GetByKey(ctx context.Context, key string) (*entity.Game, error) {
	return that.load(ctx, that.client, gameKey(key))
}

// Update - optimistic transaction on the game key; a concurrent write fails with apperror.ErrConcurrentUpdate.
func (that *dbGame) Update(ctx context.Context, key string, fn UpdateFunc) (*entity.Game, error) {
	redisKey := gameKey(key)

	var updated *entity.Game
	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		game, err := that.load(ctx, tx, redisKey)
		if err != nil {
			return err
		}

		if err = fn(game); err != nil {
			return err
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, gameJSON, that.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = game
		return nil
	}, redisKey)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, apperror.ErrConcurrentUpdate
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return updated, nil
}

func (that *dbGame) load(ctx context.Context, client stringGetter, redisKey string) (*entity.Game, error) {
	response, err := client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return entity.NewGame(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func gameKey(key string) string {
	return "game:" + key
}
