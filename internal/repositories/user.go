package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const userColumns = "id, sequence, email, password, first_name, last_name, created_at, updated_at, deleted_at"

// UserRepository implements [models.Repository] for user [models.User] persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database with generated ID and sequence.
// Emails are unique among live users.
func (r *UserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx := context.Background()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var taken bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND deleted_at IS NULL)", user.Email()).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: email %s already registered", shared.ErrInvalidInput, user.Email())
		}

		sequence, err := NextSequence(ctx, tx, "users")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		id := shared.GenerateID()
		query := `
			INSERT INTO users (id, sequence, email, password, first_name, last_name, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.ExecContext(ctx, query, id, sequence, user.Email(), user.PasswordHash(),
			user.FirstName(), user.LastName(), user.CreatedAt(), user.UpdatedAt())
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}

		user.SetID(id)
		user.SetSequence(sequence)
		return nil
	})
}

// Get retrieves a user by ID, excluding soft-deleted users
func (r *UserRepository) Get(id string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ? AND deleted_at IS NULL"

	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

// GetByEmail retrieves a live user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ? AND deleted_at IS NULL"

	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return user, nil
}

// Update writes the password hash and names of an existing user
func (r *UserRepository) Update(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	query := `
		UPDATE users SET password = ?, first_name = ?, last_name = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, user.PasswordHash(), user.FirstName(), user.LastName(), now, user.ID())
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := expectAffected(result, "user", user.ID()); err != nil {
		return err
	}

	user.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a user and the places they own
func (r *UserRepository) Delete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := softDelete(ctx, tx, "users", "user", id, now); err != nil {
			return err
		}
		return softDeletePlaces(ctx, tx, "user_id", id, now)
	})
}

// List retrieves all users matching the given criteria, excluding soft-deleted users
//
// Supported criteria: "email".
func (r *UserRepository) List(criteria map[string]any) ([]*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE deleted_at IS NULL"
	args := []any{}

	if email, ok := criteria["email"].(string); ok && email != "" {
		query += " AND email = ?"
		args = append(args, email)
	}

	query += " ORDER BY sequence ASC"

	users, err := queryAll(context.Background(), r.db, scanUser, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the number of live users
func (r *UserRepository) Count() (int, error) {
	return count(r.db, "users")
}

func scanUser(row scanner) (*models.User, error) {
	var (
		id        string
		sequence  int
		email     string
		password  string
		firstName string
		lastName  string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &email, &password, &firstName, &lastName, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(sequence, email, firstName, lastName)
	user.SetID(id)
	user.SetPasswordHash(password)
	user.SetCreatedAt(createdAt)
	user.SetUpdatedAt(updatedAt)
	user.SetDeletedAt(nullTime(deletedAt))
	return user, nil
}
