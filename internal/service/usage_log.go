package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecentLogLimit bounds how many entries the dashboard reads per session.
const RecentLogLimit = 51

const logKeyPrefix = "log:"

// LogEntry is one usage record in a session's log list.
type LogEntry struct {
	Ingredients []string  `json:"ingredients"`
	Timestamp   time.Time `json:"timestamp"`
}

// UsageLog keeps an append-only, newest-first list of generation requests per
// session. Entries are never mutated or deleted; readers only consult a
// bounded prefix.
type UsageLog struct {
	redis *redis.Client
}

// NewUsageLog creates a new UsageLog instance
func NewUsageLog(redisClient *redis.Client) *UsageLog {
	return &UsageLog{redis: redisClient}
}

func logKey(userID string) string {
	return logKeyPrefix + userID
}

// Append pushes a usage record onto the head of the session's log list.
func (l *UsageLog) Append(ctx context.Context, userID string, ingredients []string) error {
	entry := LogEntry{
		Ingredients: ingredients,
		Timestamp:   time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	if err := l.redis.LPush(ctx, logKey(userID), data).Err(); err != nil {
		return fmt.Errorf("failed to append usage log: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest entries for a session, newest first,
// along with the number of stored records that failed to decode. Decode
// failures never abort the read; they are counted so callers can tell partial
// data apart from no data.
func (l *UsageLog) Recent(ctx context.Context, userID string, n int) ([]LogEntry, int, error) {
	raw, err := l.redis.LRange(ctx, logKey(userID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read usage log: %w", err)
	}

	entries := make([]LogEntry, 0, len(raw))
	invalid := 0
	for _, item := range raw {
		var entry LogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			invalid++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, invalid, nil
}

// Sessions enumerates every session id with at least one log entry. This
// walks the full keyspace and is only suitable as an administrative tool.
func (l *UsageLog) Sessions(ctx context.Context) ([]string, error) {
	var ids []string
	iter := l.redis.Scan(ctx, 0, logKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), logKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan usage logs: %w", err)
	}
	return ids, nil
}
