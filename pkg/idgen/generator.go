package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Generator hands out unique, roughly time-ordered identifiers.
type Generator interface {
	GenerateID() int64
	GenerateString() string
}

// SnowflakeGenerator implements Generator using Twitter Snowflake.
// snowflake.Node is safe for concurrent use.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator initializes a new ID generator.
// nodeID must be unique per server instance (0-1023) to prevent collisions.
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &SnowflakeGenerator{node: node}, nil
}

// GenerateID returns a new unique 64-bit integer ID
func (g *SnowflakeGenerator) GenerateID() int64 {
	return g.node.Generate().Int64()
}

// GenerateString returns a new ID in its compact base58 form.
func (g *SnowflakeGenerator) GenerateString() string {
	return g.node.Generate().Base58()
}
