package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"hiresynapse/internal/models"
)

const (
	jobSearchGenerationKey = "jobs:search:gen"
	jobSearchKeyPrefix     = "jobs:search:v%d:%s:%d"
	jobPostingKeyPrefix    = "jobs:posting:%d"
	questionsKeyPrefix     = "questions:%s"
	blacklistKeyPrefix     = "blacklist:%s"
)

const (
	JobPostingTTL = 10 * time.Minute
	QuestionsTTL  = time.Hour
)

// JobSearchKey addresses one page of search results under the current catalog generation.
// Bumping the generation orphans every cached page at once.
func JobSearchKey(ctx context.Context, query string, page int) string {
	var gen int64
	if client != nil {
		gen, _ = client.Get(ctx, jobSearchGenerationKey).Int64()
	}
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf(jobSearchKeyPrefix, gen, hex.EncodeToString(sum[:8]), page)
}

func JobPostingKey(id uint) string {
	return fmt.Sprintf(jobPostingKeyPrefix, id)
}

// QuestionsKey is keyed by category; "" means all categories.
func QuestionsKey(category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf(questionsKeyPrefix, category)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(blacklistKeyPrefix, jti)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateJobSearch drops every cached search page.
func InvalidateJobSearch(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, jobSearchGenerationKey)
	}
}

// InvalidateQuestions drops the cached question lists.
func InvalidateQuestions(ctx context.Context) {
	keys := []string{QuestionsKey("")}
	for _, c := range models.QuestionCategories {
		keys = append(keys, QuestionsKey(string(c)))
	}
	Invalidate(ctx, keys...)
}

// Revoke marks a token id as revoked until its expiry.
func Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, BlacklistKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked. Lookup errors are treated as not revoked.
func IsRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, BlacklistKey(jti)).Result()
	return err == nil && n > 0
}
