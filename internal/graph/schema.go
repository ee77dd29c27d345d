// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package graph defines the GraphQL operation set exposed by Akari and its
single-endpoint HTTP handler.

Operations:

  - Query me: protected; returns the current User or null.
  - Mutation login(email, password): returns a session token string.
  - Mutation register(email, password, username): returns a success boolean.

Architecture:

  - The schema library is strictly a Presentation-layer collaborator: only
    this package imports it. Resolvers validate input, read the gate-resolved
    user ID from context, and delegate to [auth.Service].
*/
package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/taibuivan/akari/internal/auth"
	"github.com/taibuivan/akari/internal/platform/apperr"
	"github.com/taibuivan/akari/internal/platform/constants"
	"github.com/taibuivan/akari/internal/platform/ctxutil"
	"github.com/taibuivan/akari/internal/platform/validate"
)

// Input length bounds enforced at the API boundary. Password length is
// deliberately unbounded here: only presence is required, so existing
// accounts with short passwords keep working.
const (
	minUsernameLength = 3
	maxUsernameLength = 30
)

// Resolver bridges GraphQL field resolution to the auth service.
type Resolver struct {
	auth *auth.Service
}

// NewSchema builds the executable schema around the given auth service.
func NewSchema(authService *auth.Service) (graphql.Schema, error) {
	resolver := &Resolver{auth: authService}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).ID, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).Email, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).Username, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).CreatedAt.Format(time.RFC3339), nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceUser(p).UpdatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: resolver.resolveMe,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolver.resolveLogin,
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: resolver.resolveRegister,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// # Resolvers

// resolveMe returns the account behind the gate-resolved user ID.
//
// The gate only injects an ID after full token verification, so an empty ID
// here means the request never presented a valid token.
func (resolver *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	userID := ctxutil.GetUserID(p.Context)
	if userID == "" {
		return nil, apperr.Unauthorized(constants.MsgNotAuthenticated)
	}

	user, err := resolver.auth.CurrentUser(p.Context, userID)
	if err != nil {
		return nil, err
	}

	// A dangling token subject resolves to null, not an error.
	if user == nil {
		return nil, nil
	}

	return user, nil
}

// resolveLogin verifies credentials and returns a session token string.
func (resolver *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	validator := &validate.Validator{}
	validator.Required("email", email).
		Required("password", password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return resolver.auth.Login(p.Context, email, password)
}

// resolveRegister creates a new account and reports success.
func (resolver *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)
	username, _ := p.Args["username"].(string)

	validator := &validate.Validator{}
	validator.Required("email", email).
		Email("email", email).
		Required("password", password).
		Required("username", username).
		MinLen("username", username, minUsernameLength).
		MaxLen("username", username, maxUsernameLength).
		Username("username", username)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return resolver.auth.Register(p.Context, email, password, username)
}

// sourceUser extracts the parent [*auth.User] for a field resolver.
// The zero value keeps a broken source from panicking mid-resolution.
func sourceUser(p graphql.ResolveParams) *auth.User {
	if user, ok := p.Source.(*auth.User); ok && user != nil {
		return user
	}
	return &auth.User{}
}
