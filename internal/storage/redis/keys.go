package redis

import (
	"fmt"

	"github.com/wsentinels/sentinelchat/internal/model"
)

// Key prefix for all session data
const keyPrefix = "sentinelchat"

// sessionKey returns the Redis key for a ChatSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
