package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

func TestGetCreatesIdleSession(t *testing.T) {
	store := NewStore()

	sess := store.Get("u1")
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, model.StageIdle, sess.Stage)
	assert.Equal(t, model.Draft{}, sess.Draft)
}

func TestApplyCommits(t *testing.T) {
	store := NewStore()

	store.Apply("u1", func(sess model.Session) model.Session {
		sess.Stage = model.StageAwaitingName
		sess.Draft.ProductID = 7
		return sess
	})

	sess := store.Get("u1")
	assert.Equal(t, model.StageAwaitingName, sess.Stage)
	assert.Equal(t, 7, sess.Draft.ProductID)

	// Sessions are isolated per user.
	other := store.Get("u2")
	assert.Equal(t, model.StageIdle, other.Stage)
}

func TestClear(t *testing.T) {
	store := NewStore()

	store.Apply("u1", func(sess model.Session) model.Session {
		sess.Stage = model.StageAwaitingPhone
		sess.Draft = model.Draft{ProductID: 7, Name: "Alice"}
		return sess
	})
	store.Clear("u1")

	sess := store.Get("u1")
	assert.Equal(t, model.StageIdle, sess.Stage)
	assert.Equal(t, model.Draft{}, sess.Draft)
}

func TestApplySerializesPerUser(t *testing.T) {
	store := NewStore()

	// Each Apply increments a counter stored in the draft. With the
	// per-user lock every increment must observe the previous one, so
	// none of the 200 updates may be lost.
	const iterations = 100
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				store.Apply("u1", func(sess model.Session) model.Session {
					sess.Draft.ProductID++
					return sess
				})
			}
		}()
	}
	wg.Wait()

	sess := store.Get("u1")
	require.Equal(t, 2*iterations, sess.Draft.ProductID)
}

func TestDistinctUsersDoNotBlock(t *testing.T) {
	store := NewStore()

	// Hold u1's lock while applying to u2; if users shared a lock this
	// would deadlock on the unbuffered channel handshake.
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		store.Apply("u1", func(sess model.Session) model.Session {
			close(entered)
			<-release
			return sess
		})
		close(done)
	}()

	<-entered
	store.Apply("u2", func(sess model.Session) model.Session {
		sess.Draft.Name = "Bob"
		return sess
	})
	assert.Equal(t, "Bob", store.Get("u2").Draft.Name)

	close(release)
	<-done
}
