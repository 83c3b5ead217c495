package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thirddot45/sftrails/spec"
)

// TestOpenAPI_documentsEveryRoute verifies the embedded document parses and
// lists every route the server registers.
func TestOpenAPI_documentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string         `yaml:"openapi"`
		Paths   map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	for _, path := range []string{
		"/",
		"/health",
		"/api/v1/trails",
		"/api/v1/trails/search",
		"/api/v1/trails/summary",
		"/api/v1/trails/{trailID}",
		"/api/v1/parks",
		"/api/v1/parks/{parkName}/trails",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}
