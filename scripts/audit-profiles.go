package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Minimal shape to sanity-check stored profiles without importing the
// full entity package.
type profileData struct {
	ID      string `json:"id"`
	Health  int    `json:"health"`
	Version int64  `json:"version"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	keys, err := client.Keys(ctx, "profile:*").Result()
	if err != nil {
		log.Fatal("Failed to list profile keys:", err)
	}

	fmt.Printf("Found %d profile keys\n", len(keys))

	deleteCorrupted := os.Getenv("DELETE_CORRUPTED") == "true"
	corrupted := 0

	for _, key := range keys {
		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("  %s: failed to read: %v\n", key, err)
			continue
		}

		var p profileData
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			corrupted++
			fmt.Printf("  %s: corrupted JSON: %v\n", key, err)
			if deleteCorrupted {
				if err := client.Del(ctx, key).Err(); err != nil {
					fmt.Printf("  %s: delete failed: %v\n", key, err)
				} else {
					fmt.Printf("  %s: deleted\n", key)
				}
			}
			continue
		}

		// Key and payload must agree on the profile id.
		if id := strings.TrimPrefix(key, "profile:"); p.ID != id {
			corrupted++
			fmt.Printf("  %s: id mismatch: payload says %q\n", key, p.ID)
		}
		if p.Version < 1 {
			corrupted++
			fmt.Printf("  %s: invalid version %d\n", key, p.Version)
		}
		if p.Health < 0 {
			fmt.Printf("  %s: negative health %d\n", key, p.Health)
		}
	}

	fmt.Printf("Done. %d problem(s) found.\n", corrupted)
	if corrupted > 0 && !deleteCorrupted {
		fmt.Println("Set DELETE_CORRUPTED=true to remove unreadable entries.")
	}
}
