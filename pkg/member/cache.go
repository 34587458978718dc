package member

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds staleness of cached member lookups.
const DefaultCacheTTL = 5 * time.Minute

// CachedMemberRepository is a read-through cache over a MemberRepository.
// Only by-ID lookups are cached; writes invalidate the cached entry. Cache
// failures degrade to the underlying store.
type CachedMemberRepository struct {
	inner  MemberRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedMemberRepository wraps inner with a Redis read-through cache.
func NewCachedMemberRepository(inner MemberRepository, client *redis.Client, ttl time.Duration) *CachedMemberRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedMemberRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(id uuid.UUID) string {
	return "member:" + id.String()
}

// GetMember retrieves a member by ID, consulting the cache first
func (r *CachedMemberRepository) GetMember(ctx context.Context, id uuid.UUID) (Member, error) {
	key := cacheKey(id)

	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var m Member
		if err := json.Unmarshal([]byte(cached), &m); err == nil {
			return m, nil
		}
		slog.Debug("discarding undecodable cache entry", "key", key)
	}

	m, err := r.inner.GetMember(ctx, id)
	if err != nil {
		return Member{}, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			slog.Debug("failed to cache member", "key", key, "err", err)
		}
	}
	return m, nil
}

func (r *CachedMemberRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		slog.Debug("failed to invalidate cached member", "id", id, "err", err)
	}
}

// UpdateMember updates a member and invalidates its cache entry
func (r *CachedMemberRepository) UpdateMember(ctx context.Context, id uuid.UUID, params MemberParams) (Member, error) {
	m, err := r.inner.UpdateMember(ctx, id, params)
	if err != nil {
		return Member{}, err
	}
	r.invalidate(ctx, id)
	return m, nil
}

// DeleteMember deletes a member and invalidates its cache entry
func (r *CachedMemberRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.DeleteMember(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// ListMembers delegates to the underlying store
func (r *CachedMemberRepository) ListMembers(ctx context.Context, params ListMembersParams) ([]Member, error) {
	return r.inner.ListMembers(ctx, params)
}

// CountMembers delegates to the underlying store
func (r *CachedMemberRepository) CountMembers(ctx context.Context, params ListMembersParams) (int64, error) {
	return r.inner.CountMembers(ctx, params)
}

// CreateMember delegates to the underlying store
func (r *CachedMemberRepository) CreateMember(ctx context.Context, params MemberParams) (Member, error) {
	return r.inner.CreateMember(ctx, params)
}
