// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/akari/internal/auth"
	"github.com/taibuivan/akari/internal/graph"
	"github.com/taibuivan/akari/internal/platform/apperr"
	"github.com/taibuivan/akari/internal/platform/ctxutil"
	"github.com/taibuivan/akari/internal/platform/sec"
)

// fakeUserStore backs the schema tests with an in-memory account list.
type fakeUserStore struct {
	users []*auth.User
}

func (store *fakeUserStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	for _, user := range store.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *fakeUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range store.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *fakeUserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*auth.User, error) {
	for _, user := range store.users {
		if user.Email == email || user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *fakeUserStore) Create(ctx context.Context, user *auth.User) error {
	for _, existing := range store.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return apperr.Conflict("user already exists")
		}
	}
	store.users = append(store.users, user)
	return nil
}

// newTestSchema builds an executable schema over an in-memory store.
func newTestSchema(t *testing.T) (graphql.Schema, *fakeUserStore, *sec.TokenService) {
	t.Helper()

	store := &fakeUserStore{}
	tokens, err := sec.NewTokenService("schema-test-secret", "akari.test")
	require.NoError(t, err)

	schema, err := graph.NewSchema(auth.NewService(store, tokens))
	require.NoError(t, err)

	return schema, store, tokens
}

// execute runs a GraphQL operation against the schema with the given context.
func execute(schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
}

// registerUser runs the register mutation and requires success.
func registerUser(t *testing.T, schema graphql.Schema, email, password, username string) {
	t.Helper()

	query := fmt.Sprintf(
		`mutation { register(email: %q, password: %q, username: %q) }`,
		email, password, username,
	)
	result := execute(schema, context.Background(), query)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	require.Equal(t, true, data["register"])
}

/*
TestSchema_Register verifies the register mutation for the happy path and
for duplicate accounts.
*/
func TestSchema_Register(t *testing.T) {
	schema, store, _ := newTestSchema(t)

	registerUser(t, schema, "alice@x.com", "password-1", "alice")
	require.Len(t, store.users, 1)

	// Same email again must surface the conflict as an operation error.
	result := execute(schema, context.Background(),
		`mutation { register(email: "alice@x.com", password: "password-2", username: "bob") }`)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "user already exists", result.Errors[0].Message)
	assert.Len(t, store.users, 1)
}

/*
TestSchema_Register_Validation verifies that boundary validation rejects
malformed input before it reaches the service.
*/
func TestSchema_Register_Validation(t *testing.T) {
	schema, store, _ := newTestSchema(t)

	tests := []struct {
		name     string
		email    string
		password string
		username string
	}{
		{"invalid_email", "not-an-email", "password-1", "alice"},
		{"missing_password", "alice@x.com", "", "alice"},
		{"short_username", "alice@x.com", "password-1", "al"},
		{"invalid_username", "alice@x.com", "password-1", "alice w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := fmt.Sprintf(
				`mutation { register(email: %q, password: %q, username: %q) }`,
				tt.email, tt.password, tt.username,
			)
			result := execute(schema, context.Background(), query)

			assert.NotEmpty(t, result.Errors)
			assert.Empty(t, store.users)
		})
	}
}

/*
TestSchema_Register_ShortPassword verifies that password length is not
restricted at the boundary: a three-character password registers and the
same credentials log in afterwards.
*/
func TestSchema_Register_ShortPassword(t *testing.T) {
	schema, store, tokens := newTestSchema(t)

	result := execute(schema, context.Background(),
		`mutation { register(email: "a@x.com", password: "pw1", username: "alice") }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	require.Equal(t, true, data["register"])
	require.Len(t, store.users, 1)

	result = execute(schema, context.Background(),
		`mutation { login(email: "a@x.com", password: "pw1") }`)
	require.Empty(t, result.Errors)

	token, ok := result.Data.(map[string]interface{})["login"].(string)
	require.True(t, ok)

	userID, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, store.users[0].ID, userID)
}

/*
TestSchema_Login verifies that the login mutation returns a token that
verifies back to the registered account.
*/
func TestSchema_Login(t *testing.T) {
	schema, store, tokens := newTestSchema(t)
	registerUser(t, schema, "alice@x.com", "password-1", "alice")

	result := execute(schema, context.Background(),
		`mutation { login(email: "alice@x.com", password: "password-1") }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	token, ok := data["login"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	userID, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, store.users[0].ID, userID)
}

/*
TestSchema_Login_Failures verifies that bad credentials surface as
operation errors with the credential-specific messages.
*/
func TestSchema_Login_Failures(t *testing.T) {
	schema, _, _ := newTestSchema(t)
	registerUser(t, schema, "alice@x.com", "password-1", "alice")

	tests := []struct {
		name        string
		query       string
		wantMessage string
	}{
		{
			"unknown_email",
			`mutation { login(email: "nobody@x.com", password: "password-1") }`,
			"user not found",
		},
		{
			"wrong_password",
			`mutation { login(email: "alice@x.com", password: "wrong") }`,
			"invalid password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(schema, context.Background(), tt.query)

			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.wantMessage, result.Errors[0].Message)
		})
	}
}

/*
TestSchema_Me verifies the protected query: an authenticated context yields
the account's fields, an anonymous one yields the collapsed auth error.
*/
func TestSchema_Me(t *testing.T) {
	schema, store, _ := newTestSchema(t)
	registerUser(t, schema, "alice@x.com", "password-1", "alice")

	t.Run("authenticated", func(t *testing.T) {
		ctx := ctxutil.WithUserID(context.Background(), store.users[0].ID)
		result := execute(schema, ctx, `query { me { id email username createdAt updatedAt } }`)
		require.Empty(t, result.Errors)

		data := result.Data.(map[string]interface{})
		me, ok := data["me"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, store.users[0].ID, me["id"])
		assert.Equal(t, "alice@x.com", me["email"])
		assert.Equal(t, "alice", me["username"])
		assert.NotEmpty(t, me["createdAt"])
		assert.NotEmpty(t, me["updatedAt"])
	})

	t.Run("anonymous", func(t *testing.T) {
		result := execute(schema, context.Background(), `query { me { id } }`)

		require.NotEmpty(t, result.Errors)
		assert.Equal(t, "not authenticated", result.Errors[0].Message)
	})

	t.Run("dangling_subject", func(t *testing.T) {
		ctx := ctxutil.WithUserID(context.Background(), "no-such-id")
		result := execute(schema, ctx, `query { me { id } }`)

		require.Empty(t, result.Errors)
		data := result.Data.(map[string]interface{})
		assert.Nil(t, data["me"])
	})
}
