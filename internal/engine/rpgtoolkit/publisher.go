// Package rpgtoolkit connects Devil's Dozen games to rpg-toolkit: players and
// lobbies become core entities and turn outcomes are published as events.
package rpgtoolkit

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// Event types published during a game
const (
	EventGameStarted  = "devils_dozen.game_started"
	EventBust         = "devils_dozen.bust"
	EventHotDice      = "devils_dozen.hot_dice"
	EventBanked       = "devils_dozen.banked"
	EventWon          = "devils_dozen.won"
	EventReset        = "devils_dozen.reset"
	EventKingmaker    = "devils_dozen.kingmaker"
	EventTierAdvanced = "devils_dozen.tier_advanced"
	EventCrunch       = "devils_dozen.crunch"
)

// PublisherConfig contains configuration for creating a new Publisher
type PublisherConfig struct {
	EventBus events.EventBus
}

// Validate checks that all required dependencies are provided
func (c *PublisherConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

// Publisher raises game events on an rpg-toolkit event bus
type Publisher struct {
	bus events.EventBus
}

// NewPublisher creates a publisher for cfg.EventBus
func NewPublisher(cfg *PublisherConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, errors.InvalidInput("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Publisher{bus: cfg.EventBus}, nil
}

// Publish raises eventType with player as the source and lobby as the target
func (p *Publisher) Publish(
	ctx context.Context,
	eventType string,
	player *entities.Player,
	lobby *entities.Lobby,
) error {
	if eventType == "" {
		return errors.InvalidInput("event type is required")
	}
	if player == nil || lobby == nil {
		return errors.InvalidInput("player and lobby are required")
	}

	event := events.NewGameEvent(eventType, WrapPlayer(player), WrapLobby(lobby))
	if err := p.bus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}

	return nil
}
