package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-identity/models"
)

const usersTable = "users"

// userColumns is the column list of every user SELECT, in scan order.
var userColumns = []string{
	"id",
	"username",
	"password",
	"salt",
	"role",
	"status",
	"follower_count",
	"post_count",
	"created_at",
	"updated_at",
}

// liveFirst orders live records before soft-deleted ones.
var liveFirst = fmt.Sprintf("CASE WHEN status = '%s' THEN 1 ELSE 0 END", models.StatusDeleted)

// buildFindUserQuery selects at most one user matching every non-empty
// field of cond, preferring live and then most recently created records.
func buildFindUserQuery(b sq.StatementBuilderType, cond models.UserCondition) (string, []any, error) {
	where := sq.And{}
	if cond.ID != "" {
		where = append(where, sq.Eq{"id": cond.ID})
	}
	if cond.Username != "" {
		where = append(where, sq.Eq{"username": cond.Username})
	}
	if len(where) == 0 {
		return "", nil, ErrEmptyCondition
	}
	if cond.LiveOnly {
		where = append(where, sq.NotEq{"status": string(models.StatusDeleted)})
	}

	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		OrderBy(liveFirst, "created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildGetUserByIDQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.ID,
			user.Username,
			user.Password,
			user.Salt,
			string(user.Role),
			string(user.Status),
			user.FollowerCount,
			user.PostCount,
			user.CreatedAt,
			user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateUserQuery writes the non-nil fields of update plus updated_at.
func buildUpdateUserQuery(b sq.StatementBuilderType, id string, update models.UserUpdate) (string, []any, error) {
	set := map[string]any{
		"updated_at": update.UpdatedAt,
	}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Salt != nil {
		set["salt"] = *update.Salt
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}

	query, args, err := b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func buildSoftDeleteUserQuery(b sq.StatementBuilderType, id string, at time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("status", string(models.StatusDeleted)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
