// Package graphql wires graphql-go schemas to HTTP. The query objects
// themselves live with the controllers that own the data.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/portostore/portostore/pkg/response"
)

// NewSchema creates a query-only schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler returns an HTTP handler that executes queries against schema.
// Mutations are not part of any schema built here; writes go through the
// REST admin endpoints.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if r.Method == http.MethodGet {
			q := r.URL.Query()
			req.Query = q.Get("query")
			req.OperationName = q.Get("operationName")
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid_query_body")
			return
		}
		if req.Query == "" {
			response.Error(w, http.StatusBadRequest, "missing_query")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		// Per-field errors are carried inside the result envelope.
		_ = json.NewEncoder(w).Encode(result)
	}
}
