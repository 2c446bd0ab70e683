package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/internal/database/migrations"
	"pixelgram/internal/model"
)

// newTestDB opens an in-memory SQLite database with the real schema.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// One connection, or each pool conn would see its own empty memory db.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.MigrateUp(db.DB))
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()

	res, err := db.Exec(`INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		username, username+"@example.com", "hash")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// seedPost inserts a post with a created_at offset so ordering is
// deterministic, e.g. "-2 hours".
func seedPost(t *testing.T, db *sqlx.DB, userID int64, caption, age string) int64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO posts (user_id, caption, image_url, created_at)
		VALUES (?, ?, ?, datetime('now', ?))`,
		userID, caption, "/uploads/posts/"+caption+".jpg", age)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestPostRepository_GetFeed_Integration(t *testing.T) {
	ctx := context.Background()
	page := model.Page{Number: 1, Limit: 10}

	t.Run("follow set plus own posts, newest first", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPostRepository(db)

		alice := seedUser(t, db, "alice")
		bob := seedUser(t, db, "bob")
		carol := seedUser(t, db, "carol")

		_, err := db.Exec(`INSERT INTO follows (follower_id, following_id) VALUES (?, ?)`, alice, bob)
		require.NoError(t, err)

		seedPost(t, db, carol, "carols", "-3 hours")
		seedPost(t, db, bob, "bobs", "-2 hours")
		seedPost(t, db, alice, "alices", "-1 hours")

		posts, err := repo.GetFeed(ctx, alice, page)
		require.NoError(t, err)

		require.Len(t, posts, 2)
		assert.Equal(t, "alices", posts[0].Caption)
		assert.Equal(t, "bobs", posts[1].Caption)
		for _, p := range posts {
			assert.NotEqual(t, carol, p.UserID, "unfollowed author leaked into the feed")
		}
	})

	t.Run("empty follow set still yields own posts", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPostRepository(db)

		bob := seedUser(t, db, "bob")
		seedUser(t, db, "carol")
		seedPost(t, db, bob, "bobs", "-1 hours")

		posts, err := repo.GetFeed(ctx, bob, page)
		require.NoError(t, err)

		require.Len(t, posts, 1)
		assert.Equal(t, bob, posts[0].UserID)
	})

	t.Run("aggregates are viewer-relative", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPostRepository(db)

		alice := seedUser(t, db, "alice")
		bob := seedUser(t, db, "bob")

		_, err := db.Exec(`INSERT INTO follows (follower_id, following_id) VALUES (?, ?)`, alice, bob)
		require.NoError(t, err)

		postID := seedPost(t, db, bob, "bobs", "-1 hours")
		_, err = db.Exec(`INSERT INTO likes (post_id, user_id) VALUES (?, ?)`, postID, alice)
		require.NoError(t, err)

		posts, err := repo.GetFeed(ctx, alice, page)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].LikesCount)
		assert.True(t, posts[0].IsLiked)

		// The author sees the same count but no like of their own.
		posts, err = repo.GetFeed(ctx, bob, page)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].LikesCount)
		assert.False(t, posts[0].IsLiked)
	})
}
