// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-identity/models"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func ptr[T any](v T) *T { return &v }

func Test_buildFindUserQuery(t *testing.T) {
	tests := []struct {
		name      string
		cond      models.UserCondition
		wantErr   error
		wantArgs  []any
		wantParts []string
		notParts  []string
	}{
		{
			name:    "empty condition",
			cond:    models.UserCondition{},
			wantErr: ErrEmptyCondition,
		},
		{
			name:    "empty condition with live only",
			cond:    models.UserCondition{LiveOnly: true},
			wantErr: ErrEmptyCondition,
		},
		{
			name:      "by username",
			cond:      models.UserCondition{Username: "alice"},
			wantArgs:  []any{"alice"},
			wantParts: []string{"FROM users", "WHERE (username = $1)", "ORDER BY CASE WHEN status = 'DELETED' THEN 1 ELSE 0 END, created_at DESC", "LIMIT 1"},
			notParts:  []string{"status <>"},
		},
		{
			name:      "by username live only",
			cond:      models.UserCondition{Username: "alice", LiveOnly: true},
			wantArgs:  []any{"alice", "DELETED"},
			wantParts: []string{"username = $1", "status <> $2"},
		},
		{
			name:      "by id and username",
			cond:      models.UserCondition{ID: "id-1", Username: "alice"},
			wantArgs:  []any{"id-1", "alice"},
			wantParts: []string{"id = $1", "username = $2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindUserQuery(dollar, tt.cond)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantArgs, args)
			for _, part := range tt.wantParts {
				assert.Contains(t, query, part)
			}
			for _, part := range tt.notParts {
				assert.NotContains(t, query, part)
			}
			for _, col := range userColumns {
				assert.Contains(t, query, col)
			}
		})
	}
}

func Test_buildFindUserQuery_QuestionPlaceholders(t *testing.T) {
	query, _, err := buildFindUserQuery(question, models.UserCondition{Username: "alice", LiveOnly: true})
	require.NoError(t, err)

	assert.Contains(t, query, "username = ?")
	assert.Contains(t, query, "status <> ?")
	assert.NotContains(t, query, "$1")
}

func Test_buildGetUserByIDQuery(t *testing.T) {
	query, args, err := buildGetUserByIDQuery(dollar, "id-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT id, username, password, salt, role, status"))
	assert.Contains(t, query, "FROM users WHERE id = $1")
	assert.Equal(t, []any{"id-1"}, args)
}

func Test_buildInsertUserQuery(t *testing.T) {
	now := time.Now()
	user := models.User{
		ID:        "id-1",
		Username:  "alice",
		Password:  "digest",
		Salt:      "salt",
		Role:      models.RoleUser,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := buildInsertUserQuery(dollar, user)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO users (id,username,password,salt,role,status,follower_count,post_count,created_at,updated_at) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)",
		query)
	assert.Equal(t, []any{"id-1", "alice", "digest", "salt", "USER", "ACTIVE", int64(0), int64(0), now, now}, args)
}

func Test_buildUpdateUserQuery(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		update    models.UserUpdate
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "only timestamp",
			update:    models.UserUpdate{UpdatedAt: at},
			wantQuery: "UPDATE users SET updated_at = $1 WHERE id = $2",
			wantArgs:  []any{at, "id-1"},
		},
		{
			name:      "role",
			update:    models.UserUpdate{Role: ptr(models.RoleAdmin), UpdatedAt: at},
			wantQuery: "UPDATE users SET role = $1, updated_at = $2 WHERE id = $3",
			wantArgs:  []any{"ADMIN", at, "id-1"},
		},
		{
			name: "all fields",
			update: models.UserUpdate{
				Username:  ptr("bob"),
				Password:  ptr("digest"),
				Salt:      ptr("salt"),
				Role:      ptr(models.RoleUser),
				Status:    ptr(models.StatusBanned),
				UpdatedAt: at,
			},
			wantQuery: "UPDATE users SET password = $1, role = $2, salt = $3, status = $4, updated_at = $5, username = $6 WHERE id = $7",
			wantArgs:  []any{"digest", "USER", "salt", "BANNED", at, "bob", "id-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateUserQuery(dollar, "id-1", tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildSoftDeleteUserQuery(t *testing.T) {
	at := time.Now()

	query, args, err := buildSoftDeleteUserQuery(question, "id-1", at)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET status = ?, updated_at = ? WHERE id = ?", query)
	assert.Equal(t, []any{"DELETED", at, "id-1"}, args)
}
