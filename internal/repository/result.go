package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var ErrResultNotFound = errors.New("result not found")

const (
	scoreboardKey = "scoreboard"

	fieldHumanWins    = "human_wins"
	fieldComputerWins = "computer_wins"
	fieldDraws        = "draws"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id string) (*entity.Result, error)
	Tally(ctx context.Context) (*entity.Tally, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Save - stores the result and bumps the scoreboard counter in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, "result:"+result.ID, resultJSON, 0)
		pipe.HIncrBy(ctx, scoreboardKey, scoreboardField(result), 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, "result:"+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

func (that *dbResult) Tally(ctx context.Context) (*entity.Tally, error) {
	fields, err := that.client.HGetAll(ctx, scoreboardKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	var tally entity.Tally
	for field, target := range map[string]*int{
		fieldHumanWins:    &tally.HumanWins,
		fieldComputerWins: &tally.ComputerWins,
		fieldDraws:        &tally.Draws,
	} {
		raw, ok := fields[field]
		if !ok {
			continue
		}

		if *target, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("failed to parse scoreboard field %s: %w", field, err)
		}
	}

	return &tally, nil
}

func scoreboardField(result *entity.Result) string {
	switch {
	case result.Draw:
		return fieldDraws
	case result.HumanWon():
		return fieldHumanWins
	default:
		return fieldComputerWins
	}
}
