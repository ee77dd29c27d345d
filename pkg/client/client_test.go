// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/akari/pkg/client"
)

// recordedRequest captures what the server saw for assertions.
type recordedRequest struct {
	authorization string
	contentType   string
	query         string
	variables     map[string]interface{}
}

// newStubServer returns a server replying with the given status and body,
// plus a pointer updated with each request it receives.
func newStubServer(t *testing.T, status int, responseBody string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/graphql", request.URL.Path)

		recorded.authorization = request.Header.Get("Authorization")
		recorded.contentType = request.Header.Get("Content-Type")

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		recorded.query = body.Query
		recorded.variables = body.Variables

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	return server, recorded
}

/*
TestClient_Login verifies that a successful login stores the returned token
and that subsequent calls attach it as a bearer credential.
*/
func TestClient_Login(t *testing.T) {
	server, recorded := newStubServer(t, http.StatusOK, `{"data":{"login":"session-token"}}`)
	c := client.New(server.URL)

	token, err := c.Login(context.Background(), "alice@x.com", "password-1")
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, "session-token", c.Token())

	// Anonymous until the token arrives.
	assert.Empty(t, recorded.authorization)
	assert.Equal(t, "application/json", recorded.contentType)
	assert.Equal(t, "alice@x.com", recorded.variables["email"])

	// The stored token rides along on the next call.
	err = c.Do(context.Background(), `query { me { id } }`, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", recorded.authorization)
}

/*
TestClient_Register verifies the register call and that it leaves the
client anonymous.
*/
func TestClient_Register(t *testing.T) {
	server, recorded := newStubServer(t, http.StatusOK, `{"data":{"register":true}}`)
	c := client.New(server.URL)

	ok, err := c.Register(context.Background(), "alice@x.com", "password-1", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Empty(t, recorded.authorization)
	assert.Empty(t, c.Token())
	assert.Equal(t, "alice", recorded.variables["username"])
}

/*
TestClient_Me verifies decoding of the me payload, including the null case.
*/
func TestClient_Me(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		server, _ := newStubServer(t, http.StatusOK,
			`{"data":{"me":{"id":"u-1","email":"alice@x.com","username":"alice","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}}}`)
		c := client.New(server.URL)
		c.SetToken("session-token")

		user, err := c.Me(context.Background())
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("absent", func(t *testing.T) {
		server, _ := newStubServer(t, http.StatusOK, `{"data":{"me":null}}`)
		c := client.New(server.URL)
		c.SetToken("session-token")

		user, err := c.Me(context.Background())
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

/*
TestClient_OperationError verifies that GraphQL operation errors surface as
plain Go errors carrying the server's message.
*/
func TestClient_OperationError(t *testing.T) {
	server, _ := newStubServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"user already exists"}]}`)
	c := client.New(server.URL)

	ok, err := c.Register(context.Background(), "alice@x.com", "password-1", "alice")
	assert.False(t, ok)
	require.Error(t, err)
	assert.EqualError(t, err, "user already exists")
}

/*
TestClient_GateRejection verifies that a rejection written before the
executor runs — a flat error envelope with a 401 status — surfaces as an
error. A stale stored token must not turn into a silent empty session.
*/
func TestClient_GateRejection(t *testing.T) {
	server, recorded := newStubServer(t, http.StatusUnauthorized,
		`{"error":"not authenticated","code":"UNAUTHORIZED"}`)
	c := client.New(server.URL)
	c.SetToken("expired-token")

	token, err := c.Login(context.Background(), "alice@x.com", "password-1")
	require.Error(t, err)
	assert.EqualError(t, err, "not authenticated")
	assert.Empty(t, token)

	// The stale token rode along and the stored session is untouched.
	assert.Equal(t, "Bearer expired-token", recorded.authorization)
	assert.Equal(t, "expired-token", c.Token())
}

/*
TestClient_UnexpectedStatus verifies that a non-2xx response without a
recognizable envelope still fails instead of decoding as success.
*/
func TestClient_UnexpectedStatus(t *testing.T) {
	server, _ := newStubServer(t, http.StatusBadGateway, `{}`)
	c := client.New(server.URL)

	err := c.Do(context.Background(), `query { me { id } }`, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
