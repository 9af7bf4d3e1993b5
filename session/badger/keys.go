package badger

import (
	"fmt"

	"github.com/forkful/menusearch/core"
)

const entryPrefix = "sess"

// makeSessionPrefix builds the key prefix shared by every entry in a
// session, used for bulk invalidation.
func makeSessionPrefix(sessionID string) []byte {
	return fmt.Appendf(nil, "%s:%d:", entryPrefix, core.IDFromContent(sessionID))
}

// makeEntryKey builds the key for one session+query pair.
func makeEntryKey(sessionID, query string) []byte {
	return fmt.Appendf(makeSessionPrefix(sessionID), "%d", core.IDFromContent(query))
}
