package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/mapping"
)

// Every shipped template schema must pass the loader's validation.
func TestShippedSchemasAreValid(t *testing.T) {
	schemaFiles := []string{
		"classic.json",
		"modern.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			schema, err := mapping.LoadSchema(data)
			require.NoError(t, err, "schema file should validate: %s", schemaFile)
			assert.NotEmpty(t, schema.Name)
			assert.NotEmpty(t, schema.Slots)
		})
	}
}
