package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTaxonomyDefault(t *testing.T) {
	tax, err := LoadTaxonomy("")
	require.NoError(t, err)
	assert.NotEmpty(t, tax.KeywordsFor("fitness"))
	assert.NotEmpty(t, tax.KeywordsFor("gaming"))
}

func TestLoadTaxonomyFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pets":["dog","cat","puppy"]}`), 0o644))

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "cat", "puppy"}, tax.KeywordsFor("pets"))
	assert.Nil(t, tax.KeywordsFor("fitness"))
}

func TestLoadTaxonomyErrors(t *testing.T) {
	_, err := LoadTaxonomy("/nonexistent/taxonomy.json")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadTaxonomy(path)
	assert.Error(t, err)
}

func TestKeywordsForLooseVerticalMatch(t *testing.T) {
	tax := DefaultTaxonomy()
	// "fitness & health" should resolve to the fitness vertical.
	assert.Equal(t, tax["fitness"], tax.KeywordsFor("fitness & health"))
	assert.Nil(t, tax.KeywordsFor(""))
	assert.Nil(t, tax.KeywordsFor("quantum finance"))
}
