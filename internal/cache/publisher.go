package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/redis/go-redis/v9"
)

// EventPlateAppearanceRecorded is the type of the event emitted after a new
// plate appearance is stored. Idempotent replays do not emit it.
const EventPlateAppearanceRecorded = "plate_appearance.recorded"

// PlateAppearanceEvent is the payload written to the stream's data field.
type PlateAppearanceEvent struct {
	Type            string                `json:"type"`
	SeasonID        int64                 `json:"season_id"`
	PlateAppearance model.PlateAppearance `json:"plate_appearance"`
}

// EventPublisher fans plate-appearance events out to downstream consumers.
type EventPublisher interface {
	PublishPlateAppearance(ctx context.Context, ev PlateAppearanceEvent) error
}

// RedisStreamPublisher appends events to a single Redis stream.
type RedisStreamPublisher struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

// NewRedisStreamPublisher trims the stream approximately to maxLen entries;
// maxLen <= 0 leaves it unbounded.
func NewRedisStreamPublisher(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *RedisStreamPublisher) PublishPlateAppearance(ctx context.Context, ev PlateAppearanceEvent) error {
	if ev.Type == "" {
		ev.Type = EventPlateAppearanceRecorded
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling plate appearance event: %w", err)
	}
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"data":    string(data),
			"game_id": strconv.FormatInt(ev.PlateAppearance.GameID, 10),
			"result":  string(ev.PlateAppearance.Result),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return p.client.XAdd(ctx, args).Err()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishPlateAppearance(context.Context, PlateAppearanceEvent) error { return nil }

var (
	_ EventPublisher = (*RedisStreamPublisher)(nil)
	_ EventPublisher = NopPublisher{}
)
