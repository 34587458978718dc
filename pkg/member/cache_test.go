package member

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCachedRepo(t *testing.T) (*CachedMemberRepository, *InMemMemberRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := NewInMemMemberRepository()
	return NewCachedMemberRepository(inner, client, time.Minute), inner, mr
}

func seedMember(t *testing.T, repo MemberRepository, email string) Member {
	t.Helper()
	m, err := repo.CreateMember(context.Background(), MemberParams{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC),
		Email:       email,
	})
	require.NoError(t, err)
	return m
}

func TestCachedGetMemberPopulatesCache(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	got, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.True(t, mr.Exists(cacheKey(m.ID)))
}

func TestCachedGetMemberServesHitWithoutStore(t *testing.T) {
	repo, inner, _ := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	_, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)

	// Remove from the backing store; the cached copy still answers.
	require.NoError(t, inner.DeleteMember(context.Background(), m.ID))

	got, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Email, got.Email)
}

func TestCachedUpdateInvalidates(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	_, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(m.ID)))

	_, err = repo.UpdateMember(context.Background(), m.ID, MemberParams{
		FirstName:   "Ada",
		LastName:    "King",
		DateOfBirth: m.DateOfBirth,
		Email:       m.Email,
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cacheKey(m.ID)))

	got, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "King", got.LastName)
}

func TestCachedDeleteInvalidates(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	_, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteMember(context.Background(), m.ID))
	assert.False(t, mr.Exists(cacheKey(m.ID)))

	_, err = repo.GetMember(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCachedGetMemberDiscardsCorruptEntry(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	require.NoError(t, mr.Set(cacheKey(m.ID), "not-json"))

	got, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Email, got.Email)
}

func TestCachedGetMemberSurvivesRedisOutage(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	m := seedMember(t, inner, "ada@example.com")

	mr.Close()

	got, err := repo.GetMember(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}
