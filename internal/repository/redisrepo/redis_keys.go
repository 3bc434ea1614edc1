package redisrepo

import "fmt"

const (
	RECIPIENT_FEED = "recipient:%s-feed:%d:%d" // <recipientID>:<limit>:<offset>
)

func RecipientFeedKey(recipientID string, limit int, offset int) string {
	return fmt.Sprintf(RECIPIENT_FEED, recipientID, limit, offset)
}

// RecipientFeedPattern matches every cached feed page for a recipient, for
// invalidation after fanout or read-state changes.
func RecipientFeedPattern(recipientID string) string {
	return fmt.Sprintf("recipient:%s-feed:*", recipientID)
}
