// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client provides a thin API client for the Akari GraphQL endpoint.

It mirrors what the browser client does: keep the session token issued by
login and attach it as an 'Authorization: Bearer' header on every outgoing
call. Token storage beyond the lifetime of the Client value is the caller's
responsibility.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// defaultTimeout bounds every API call issued by the client.
const defaultTimeout = 30 * time.Second

// Client talks to a single Akari server.
//
// # Concurrency
//
// Client is not safe for concurrent use while [Client.SetToken] may be
// called; share it only after the session is established.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client for the given server base URL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken stores the session token attached to subsequent calls.
// Pass an empty string to return to anonymous calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the currently stored session token.
func (c *Client) Token() string {
	return c.token
}

// # Wire Types

type operationRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type operationError struct {
	Message string `json:"message"`
}

type operationResponse struct {
	Data   json.RawMessage  `json:"data"`
	Errors []operationError `json:"errors"`

	// TransportError captures the flat {"error": ..., "code": ...} envelope
	// the server writes for rejections that never reach the executor (e.g.
	// an invalid bearer token stopped at the gate).
	TransportError string `json:"error"`
}

// User is the client-side projection of an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// # Operations

// Do executes a raw GraphQL operation and unmarshals the data payload into
// out (which may be nil). The stored token, if any, is attached as a bearer
// credential.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(operationRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("client: failed to encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: failed to build request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	var result operationResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return fmt.Errorf("client: failed to decode response (status %d): %w", response.StatusCode, err)
	}

	// Operation-level failures arrive as message strings.
	if len(result.Errors) > 0 {
		return errors.New(result.Errors[0].Message)
	}

	// Non-2xx responses carry the flat error envelope instead of a GraphQL
	// result; without this check a gate rejection would decode into an empty
	// result and read as success.
	if response.StatusCode != http.StatusOK {
		if result.TransportError != "" {
			return errors.New(result.TransportError)
		}
		return fmt.Errorf("client: unexpected status %d", response.StatusCode)
	}

	if out != nil && result.Data != nil {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("client: failed to decode data: %w", err)
		}
	}

	return nil
}

// Login authenticates and stores the returned session token on the client,
// so every subsequent call carries it automatically.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const query = `mutation ($email: String!, $password: String!) {
		login(email: $email, password: $password)
	}`

	var payload struct {
		Login string `json:"login"`
	}

	err := c.Do(ctx, query, map[string]interface{}{
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return "", err
	}

	c.SetToken(payload.Login)
	return payload.Login, nil
}

// Register creates a new account. It does not log in: follow up with
// [Client.Login] to obtain a session token.
func (c *Client) Register(ctx context.Context, email, password, username string) (bool, error) {
	const query = `mutation ($email: String!, $password: String!, $username: String!) {
		register(email: $email, password: $password, username: $username)
	}`

	var payload struct {
		Register bool `json:"register"`
	}

	err := c.Do(ctx, query, map[string]interface{}{
		"email":    email,
		"password": password,
		"username": username,
	}, &payload)
	if err != nil {
		return false, err
	}

	return payload.Register, nil
}

// Me returns the account behind the stored session token, or nil when the
// server resolves the token subject to no account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	const query = `query {
		me { id email username createdAt updatedAt }
	}`

	var payload struct {
		Me *User `json:"me"`
	}

	if err := c.Do(ctx, query, nil, &payload); err != nil {
		return nil, err
	}

	return payload.Me, nil
}
