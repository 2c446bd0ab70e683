package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"pixelgram/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A unique constraint violation on username or
// email maps to model.ErrUserExists.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, password, full_name)
		VALUES (?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.Password, u.FullName)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted user id: %w", err)
	}
	u.ID = id

	return r.db.GetContext(ctx, u, `SELECT * FROM users WHERE id = ?`, id)
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

// GetByUsername retrieves a user by username or email. Login accepts
// either identifier in the same field.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM users WHERE username = ? OR email = ?`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

// GetProfile returns the profile with every aggregate recomputed from the
// base tables in one round trip. viewerID is always bound, never spliced
// into the query text; 0 stands for an anonymous viewer and matches no
// follow edge.
func (r *userRepository) GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.bio, u.avatar, u.verified, u.private,
		       (SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS followers_count,
		       (SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS following_count,
		       (SELECT COUNT(*) FROM posts WHERE user_id = u.id) AS posts_count,
		       EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND following_id = u.id) AS is_following
		FROM users u
		WHERE u.username = ?
	`

	var p model.Profile
	err := r.db.GetContext(ctx, &p, query, viewerID, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// Update applies the set fields of a profile update as a single
// parameterized UPDATE.
func (r *userRepository) Update(ctx context.Context, userID int64, update *model.ProfileUpdate) error {
	if update.IsEmpty() {
		return model.ErrNoFieldsToUpdate
	}

	setClause := ""
	args := []interface{}{}
	appendSet := func(column string, value interface{}) {
		if setClause != "" {
			setClause += ", "
		}
		setClause += column + " = ?"
		args = append(args, value)
	}

	if update.FullName != nil {
		appendSet("full_name", *update.FullName)
	}
	if update.Bio != nil {
		appendSet("bio", *update.Bio)
	}
	if update.Private != nil {
		appendSet("private", *update.Private)
	}
	if update.Avatar != nil {
		appendSet("avatar", *update.Avatar)
	}

	args = append(args, userID)
	query := "UPDATE users SET " + setClause + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Search matches usernames and full names by substring, popular accounts
// first.
func (r *userRepository) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.UserSummary, error) {
	searchQuery := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.verified,
		       EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND following_id = u.id) AS is_following
		FROM users u
		WHERE u.username LIKE ? OR u.full_name LIKE ?
		ORDER BY (SELECT COUNT(*) FROM follows WHERE following_id = u.id) DESC
		LIMIT ?
	`

	pattern := "%" + query + "%"
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, searchQuery, viewerID, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
