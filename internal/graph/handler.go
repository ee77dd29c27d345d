// Copyright (c) 2026 Akari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/taibuivan/akari/internal/platform/ctxutil"
	"github.com/taibuivan/akari/internal/platform/respond"
	"github.com/taibuivan/akari/internal/platform/validate"
)

// Handler serves the single GraphQL endpoint.
//
// Every operation — public or protected — arrives as a POST to the same
// URL; authentication state travels in the request context, placed there by
// the middleware gate before this handler runs.
type Handler struct {
	schema graphql.Schema
}

// NewHandler constructs a [Handler] around an executable schema.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// operationRequest is the standard GraphQL-over-HTTP request body.
type operationRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute handles POST /graphql.
//
// The response is always HTTP 200 with the GraphQL result envelope;
// operation failures are reported in the `errors` array as plain message
// strings, per the propagation policy (no structured error codes).
func (handler *Handler) Execute(writer http.ResponseWriter, request *http.Request) {
	var input operationRequest

	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         handler.schema,
		RequestString:  input.Query,
		OperationName:  input.OperationName,
		VariableValues: input.Variables,
		Context:        request.Context(),
	})

	if result.HasErrors() {
		logger := ctxutil.GetLogger(request.Context())
		for _, operationError := range result.Errors {
			logger.WarnContext(request.Context(), "graphql_operation_failed",
				slog.String("message", operationError.Message),
			)
		}
	}

	respond.JSON(writer, http.StatusOK, result)
}
