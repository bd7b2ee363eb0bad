package bind

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDecodes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{"name":"Vestido"}`))

	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, JSON(req, &body))
	assert.Equal(t, "Vestido", body.Name)
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{oops`))

	var body map[string]interface{}
	assert.Error(t, JSON(req, &body))
}
