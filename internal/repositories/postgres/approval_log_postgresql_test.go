package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/models"
)

func newTestCacheManager(t *testing.T) *cache.CacheManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewCacheManager(client)
}

// A warm count must be served from the cache without touching the
// database. The nil *gorm.DB makes any query attempt panic, so passing
// proves the fetch path was never entered.
func TestCountByApprover_CachedHit(t *testing.T) {
	cm := newTestCacheManager(t)
	repo := NewApprovalLogPostgreSQL(nil, cm)
	ctx := context.Background()

	if err := cm.Stats.Set(ctx, countCacheKey("a-1", nil), int64(7), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	action := models.ApprovalActionApproved
	if err := cm.Stats.Set(ctx, countCacheKey("a-1", &action), int64(5), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	total, err := repo.CountByApprover(ctx, "a-1", nil)
	if err != nil {
		t.Fatalf("CountByApprover failed: %v", err)
	}
	if total != 7 {
		t.Errorf("Expected cached total 7, got %d", total)
	}

	approved, err := repo.CountByApprover(ctx, "a-1", &action)
	if err != nil {
		t.Fatalf("CountByApprover failed: %v", err)
	}
	if approved != 5 {
		t.Errorf("Expected cached approved count 5, got %d", approved)
	}
}

func TestCountCacheKey(t *testing.T) {
	if got := countCacheKey("a-1", nil); got != "approver:a-1:all" {
		t.Errorf("Unexpected key %q", got)
	}
	rejected := models.ApprovalActionRejected
	if got := countCacheKey("a-1", &rejected); got != "approver:a-1:rejected" {
		t.Errorf("Unexpected key %q", got)
	}
}

// Existence checks share the same contract: a warm key answers without
// a database round trip.
func TestUserExists_CachedHit(t *testing.T) {
	cm := newTestCacheManager(t)
	repo := NewUserPostgreSQL(nil, cm)
	ctx := context.Background()

	if err := cm.Exists.Set(ctx, "email:jdoe@example.com", true, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cm.Exists.Set(ctx, "username:jdoe", true, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	taken, err := repo.ExistsByEmail(ctx, "jdoe@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail failed: %v", err)
	}
	if !taken {
		t.Error("Expected cached email hit")
	}

	taken, err = repo.ExistsByUsername(ctx, "jdoe")
	if err != nil {
		t.Fatalf("ExistsByUsername failed: %v", err)
	}
	if !taken {
		t.Error("Expected cached username hit")
	}
}
