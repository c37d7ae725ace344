package cache

import "fmt"

// RateLimitKey is the counter key for a client, identified either by API key
// prefix or by remote IP.
func RateLimitKey(client string) string {
	return fmt.Sprintf("fixit:ratelimit:%s", client)
}
