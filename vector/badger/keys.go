package badger

import (
	"fmt"

	"github.com/forkful/menusearch/core"
)

// Key prefix for vector-indexed menu items.
const itemPrefix = "menuvec"

// makeItemKey generates a storage key for an item by its external id.
// The id is content-hashed so keys stay fixed-width regardless of how long
// upstream identifiers are.
func makeItemKey(externalID string) []byte {
	return []byte(fmt.Sprintf("%s:%d", itemPrefix, core.IDFromContent(externalID)))
}
