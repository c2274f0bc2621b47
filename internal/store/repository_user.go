package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

// userRepository is the database/sql implementation of [UserRepository].
// Every method obtains a context-scoped logger via [logger.FromContext].
type userRepository struct {
	*DB
	logger *logger.Logger

	now func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("UserRepository created")
	return &userRepository{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *userRepository) FindByCondition(ctx context.Context, cond models.UserCondition) (models.User, error) {
	query, args, err := buildFindUserQuery(r.builder, cond)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.FindByCondition").
			Msg("failed to create query")
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindByCondition", query, args)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	query, args, err := buildGetUserByIDQuery(r.builder, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userRepository.GetByID").
			Str("user_id", id).
			Msg("failed to create query")
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.GetByID", query, args)
}

func (r *userRepository) Insert(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Insert").Msg("failed to create query")
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.Insert").Msg("username is taken")
			return ErrUsernameAlreadyExists
		}

		log.Err(err).
			Str("func", "*userRepository.Insert").
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("failed to insert user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, id string, update models.UserUpdate) error {
	log := logger.FromContext(ctx)

	if update.UpdatedAt.IsZero() {
		update.UpdatedAt = r.now()
	}

	query, args, err := buildUpdateUserQuery(r.builder, id, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Str("user_id", id).Msg("failed to create query")
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.Update").Str("user_id", id).Msg("username is taken")
			return ErrUsernameAlreadyExists
		}

		log.Err(err).
			Str("func", "*userRepository.Update").
			Str("user_id", id).
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("failed to update user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.expectAffected(ctx, "*userRepository.Update", id, result)
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSoftDeleteUserQuery(r.builder, id, r.now())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SoftDelete").Str("user_id", id).Msg("failed to create query")
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.SoftDelete").
			Str("user_id", id).
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("failed to soft delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.expectAffected(ctx, "*userRepository.SoftDelete", id, result)
}

// queryUser runs a single-row user SELECT and scans it.
func (r *userRepository) queryUser(ctx context.Context, fn, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user   models.User
		role   string
		status string
	)
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Salt,
		&role,
		&status,
		&user.FollowerCount,
		&user.PostCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.Role = models.Role(role)
	user.Status = models.Status(status)

	return user, nil
}

// expectAffected turns "no rows affected" into ErrNoUserWasFound.
func (r *userRepository) expectAffected(ctx context.Context, fn, id string, result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("user_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
