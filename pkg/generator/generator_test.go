package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlplane-com/log-index-templates/pkg/catalog"
	"github.com/controlplane-com/log-index-templates/pkg/schema"
	"github.com/controlplane-com/log-index-templates/pkg/template"
)

// newOutputRoot creates a temp root with every variant directory in place
func newOutputRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, v := range template.Variants() {
		require.NoError(t, os.Mkdir(filepath.Join(root, v.Dir), 0755))
	}
	return root
}

func defaultCategories(t *testing.T) []catalog.Category {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c.Categories
}

func readTemplate(t *testing.T, path string) *template.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := template.Unmarshal(data)
	require.NoError(t, err)
	return doc
}

func TestRunWritesAllFiles(t *testing.T) {
	root := newOutputRoot(t)
	categories := defaultCategories(t)

	result, err := New(root, template.Variants()).Run(categories)
	require.NoError(t, err)
	assert.Equal(t, 16, result.Categories)
	assert.Len(t, result.Files, 48)

	for _, v := range template.Variants() {
		entries, err := os.ReadDir(filepath.Join(root, v.Dir))
		require.NoError(t, err)
		require.Len(t, entries, 16, v.Dir)
		for _, cat := range categories {
			assert.FileExists(t, filepath.Join(root, v.Dir, cat.Name+".json"))
		}
	}
}

func TestRunVariantsAgree(t *testing.T) {
	root := newOutputRoot(t)
	gen := New(root, template.Variants())
	categories := defaultCategories(t)

	_, err := gen.Run(categories)
	require.NoError(t, err)

	for _, cat := range categories {
		variants := template.Variants()
		legacy := readTemplate(t, gen.Path(variants[0], cat.Name))
		typeless := readTemplate(t, gen.Path(variants[1], cat.Name))
		shim := readTemplate(t, gen.Path(variants[2], cat.Name))

		require.NotNil(t, legacy.Mappings.Doc, cat.Name)
		assert.Nil(t, typeless.Mappings.Doc, cat.Name)
		assert.Nil(t, shim.Mappings.Doc, cat.Name)

		assert.Equal(t, legacy.Properties(), typeless.Properties(), cat.Name)
		assert.Equal(t, legacy.Properties(), shim.Properties(), cat.Name)

		assert.Equal(t, "6", legacy.Settings.Index.NumberOfShards)
		assert.Equal(t, "6", typeless.Settings.Index.NumberOfShards)
		assert.Equal(t, "3", shim.Settings.Index.NumberOfShards)

		assert.Equal(t, cat.Patterns, legacy.IndexPatterns)
	}
}

func TestRunMessageIndexedOnlyForErrorAndFatal(t *testing.T) {
	root := newOutputRoot(t)
	gen := New(root, template.Variants())

	_, err := gen.Run(defaultCategories(t))
	require.NoError(t, err)

	indexed := map[string]bool{"x-err": true, "x-fatal": true}
	for _, cat := range defaultCategories(t) {
		for _, v := range template.Variants() {
			msg := readTemplate(t, gen.Path(v, cat.Name)).Properties()["message"]
			assert.Equal(t, schema.FieldTypeText, msg.Type)
			assert.Equal(t, indexed[cat.Name], msg.Indexed(), "%s/%s", v.Dir, cat.Name)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	root := newOutputRoot(t)
	gen := New(root, template.Variants())
	categories := defaultCategories(t)

	first, err := gen.Run(categories)
	require.NoError(t, err)

	before := make(map[string][]byte, len(first.Files))
	for _, path := range first.Files {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		before[path] = data
	}

	second, err := gen.Run(categories)
	require.NoError(t, err)
	require.Equal(t, first.Files, second.Files)

	for _, path := range second.Files {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before[path], data, path)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	root := t.TempDir()
	// Only the first variant directory exists
	require.NoError(t, os.Mkdir(filepath.Join(root, "templates"), 0755))

	_, err := New(root, template.Variants()).Run(defaultCategories(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	// Nothing is written when preflight fails
	entries, err := os.ReadDir(filepath.Join(root, "templates"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPreflightNotADirectory(t *testing.T) {
	root := newOutputRoot(t)
	shim := filepath.Join(root, "templates-nomt-shim")
	require.NoError(t, os.Remove(shim))
	require.NoError(t, os.WriteFile(shim, []byte("x"), 0644))

	err := New(root, template.Variants()).Preflight()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestBuildTemplateMissingDirectory(t *testing.T) {
	root := t.TempDir()

	_, err := New(root, template.Variants()).BuildTemplate("x-info", []string{"info-*"}, schema.Common)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write template")
	assert.NoDirExists(t, filepath.Join(root, "templates"))
}

func TestBuildTemplateMergesLayers(t *testing.T) {
	root := newOutputRoot(t)
	gen := New(root, template.Variants())

	paths, err := gen.BuildTemplate("x-custom", []string{"custom-*"},
		schema.Table{"a": schema.Of(schema.FieldTypeLong), "b": schema.Of(schema.FieldTypeLong)},
		schema.Table{"b": schema.Unindexed(schema.FieldTypeKeyword)},
	)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	props := readTemplate(t, paths[2]).Properties()
	assert.Equal(t, schema.Table{
		"a": schema.Of(schema.FieldTypeLong),
		"b": schema.Unindexed(schema.FieldTypeKeyword),
	}, props)
}

func TestCheck(t *testing.T) {
	root := newOutputRoot(t)
	gen := New(root, template.Variants())
	categories := defaultCategories(t)

	stale, err := gen.Check(categories)
	require.NoError(t, err)
	assert.Len(t, stale, 48)

	_, err = gen.Run(categories)
	require.NoError(t, err)

	stale, err = gen.Check(categories)
	require.NoError(t, err)
	assert.Empty(t, stale)

	modified := gen.Path(template.Variants()[1], "x-sql")
	require.NoError(t, os.WriteFile(modified, []byte("{}"), 0644))
	removed := gen.Path(template.Variants()[2], "x-perf")
	require.NoError(t, os.Remove(removed))

	stale, err = gen.Check(categories)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{modified, removed}, stale)
}
