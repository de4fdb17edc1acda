package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Epoch is the custom Snowflake epoch: 2025-01-01T00:00:00Z in milliseconds.
const Epoch int64 = 1735689600000

const maxNodeID = 1<<10 - 1

var setEpoch sync.Once

// Snowflake generates time-ordered numeric IDs, used for chat messages so
// that IDs sort in creation order.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	err := binary.Read(rand.Reader, binary.BigEndian, &nodeID)
	if err != nil {
		return 0, err
	}

	return nodeID & maxNodeID, nil
}

// NewSnowflake constructs a generator for nodeID (0..1023). A negative nodeID
// picks a random node, which is fine for a single instance.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 {
		var err error
		if nodeID, err = generateRandomNodeID(); err != nil {
			return nil, err
		}
	}
	if nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id %d out of range 0..%d", nodeID, maxNodeID)
	}

	setEpoch.Do(func() { snowflake.Epoch = Epoch })

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
