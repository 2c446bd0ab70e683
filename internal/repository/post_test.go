package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/internal/model"
)

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "caption", "image_url", "location", "created_at",
		"username", "full_name", "avatar", "verified",
		"likes_count", "comments_count", "is_liked"})
}

func TestPostRepository_GetByID(t *testing.T) {
	t.Run("derived aggregates scanned", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM posts p\s+JOIN users u ON u.id = p.user_id\s+WHERE p.id = \?`).
			WithArgs(int64(7), int64(10)).
			WillReturnRows(postRows().
				AddRow(10, 2, "sunset", "/uploads/posts/a.jpg", "", time.Now(),
					"bob", "Bob", "default-avatar.png", false, 12, 3, true))

		post, err := repo.GetByID(context.Background(), 10, 7)

		require.NoError(t, err)
		assert.Equal(t, 12, post.LikesCount)
		assert.Equal(t, 3, post.CommentsCount)
		assert.True(t, post.IsLiked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM posts p`).
			WithArgs(int64(0), int64(10)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 10, 0)

		assert.ErrorIs(t, err, model.ErrPostNotFound)
	})
}

func TestPostRepository_GetFeed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	// The viewer id is bound three times: is_liked, the follow set, and
	// the union that keeps the viewer's own posts in the feed.
	mock.ExpectQuery(`SELECT following_id FROM follows WHERE follower_id = \?\s+UNION\s+SELECT \?`).
		WithArgs(int64(7), int64(7), int64(7), 10, 0).
		WillReturnRows(postRows().
			AddRow(2, 7, "my own post", "/uploads/posts/b.jpg", "", time.Now(),
				"alice", "Alice", "default-avatar.png", false, 0, 0, false).
			AddRow(1, 3, "a friend's post", "/uploads/posts/c.jpg", "", time.Now(),
				"bob", "Bob", "default-avatar.png", false, 1, 0, true))

	posts, err := repo.GetFeed(context.Background(), 7, model.Page{Number: 1, Limit: 10})

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(7), posts[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetExplore_PageOffset(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`ORDER BY RANDOM\(\)`).
		WithArgs(int64(0), 20, 20).
		WillReturnRows(postRows())

	posts, err := repo.GetExplore(context.Background(), 0, model.Page{Number: 2, Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(`DELETE FROM posts WHERE id = \? AND user_id = \?`).
			WithArgs(int64(10), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 10, 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-owner or missing post", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(`DELETE FROM posts`).
			WithArgs(int64(10), int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 10, 8)

		assert.ErrorIs(t, err, model.ErrPostNotFound)
	})
}

func TestPostRepository_GetAuthorID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT user_id FROM posts WHERE id = \?`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))

	authorID, err := repo.GetAuthorID(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(42), authorID)
}
