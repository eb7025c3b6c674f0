// pkg/taxonomy/taxonomy_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test extension normalization, ordered lookup and overlap validation

package taxonomy_test

import (
	"testing"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []taxonomy.Entry {
	return []taxonomy.Entry{
		{Category: "Imagenes", Subcategory: "Fotos", Extensions: []string{".jpg", ".jpeg", ".heic"}},
		{Category: "Imagenes", Subcategory: "Graficos", Extensions: []string{".png", ".svg", ".webp"}},
		{Category: "Documentos", Subcategory: "PDFs", Extensions: []string{".pdf"}},
		{Category: "Documentos", Subcategory: "Textos", Extensions: []string{".txt", ".md", ".rtf"}},
		{Category: "Musica", Extensions: []string{"MP3", "flac"}},
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JPG", ".jpg"},
		{".JPG", ".jpg"},
		{"pdf", ".pdf"},
		{" .Md ", ".md"},
		{"", ""},
		{".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.NormalizeExtension(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	tax := taxonomy.MustNew(sampleEntries())

	tests := []struct {
		name string
		ext  string
		want types.Route
	}{
		{"lowercase with dot", ".jpg", types.Route{Category: "Imagenes", Subcategory: "Fotos"}},
		{"uppercase without dot", "JPG", types.Route{Category: "Imagenes", Subcategory: "Fotos"}},
		{"mixed case", ".Pdf", types.Route{Category: "Documentos", Subcategory: "PDFs"}},
		{"category-level entry", ".mp3", types.Route{Category: "Musica"}},
		{"unknown extension", ".xyz", types.FallbackRoute()},
		{"empty extension", "", types.FallbackRoute()},
		{"bare dot", ".", types.FallbackRoute()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.Resolve(tt.ext))
		})
	}
}

func TestResolve_EmptyTaxonomyAlwaysFallsBack(t *testing.T) {
	tax := taxonomy.MustNew(nil)

	assert.Equal(t, types.FallbackRoute(), tax.Resolve(".jpg"))
	assert.Equal(t, []types.Route{types.FallbackRoute()}, tax.Locations())
}

func TestNew_RejectsOverlappingExtensions(t *testing.T) {
	entries := []taxonomy.Entry{
		{Category: "Imagenes", Subcategory: "Fotos", Extensions: []string{".jpg"}},
		{Category: "Documentos", Subcategory: "Escaneos", Extensions: []string{"JPG"}},
	}

	_, err := taxonomy.New(entries)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTaxonomyOverlap))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, ".jpg", details["extension"])
	assert.Equal(t, "Imagenes/Fotos", details["first"])
	assert.Equal(t, "Documentos/Escaneos", details["second"])
}

func TestNew_DuplicateExtensionWithinEntryIsAllowed(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Entry{
		{Category: "Imagenes", Subcategory: "Fotos", Extensions: []string{".jpg", "JPG"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".jpg"}, tax.Entries()[0].Extensions)
}

func TestNew_InvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []taxonomy.Entry
		code    errors.ErrorCode
	}{
		{
			name:    "empty category",
			entries: []taxonomy.Entry{{Category: " ", Extensions: []string{".a"}}},
			code:    errors.ErrConfigValid,
		},
		{
			name:    "reserved fallback category",
			entries: []taxonomy.Entry{{Category: "Otros", Extensions: []string{".a"}}},
			code:    errors.ErrConfigValid,
		},
		{
			name:    "path separator in name",
			entries: []taxonomy.Entry{{Category: "Docs", Subcategory: "a/b", Extensions: []string{".a"}}},
			code:    errors.ErrConfigValid,
		},
		{
			name: "location declared twice",
			entries: []taxonomy.Entry{
				{Category: "Docs", Subcategory: "PDFs", Extensions: []string{".pdf"}},
				{Category: "Docs", Subcategory: "PDFs", Extensions: []string{".ps"}},
			},
			code: errors.ErrConfigValid,
		},
		{
			name:    "empty extension",
			entries: []taxonomy.Entry{{Category: "Docs", Extensions: []string{""}}},
			code:    errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := taxonomy.New(tt.entries)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestLocations_DeclaredOrderThenFallback(t *testing.T) {
	tax := taxonomy.MustNew(sampleEntries())

	want := []types.Route{
		{Category: "Imagenes", Subcategory: "Fotos"},
		{Category: "Imagenes", Subcategory: "Graficos"},
		{Category: "Documentos", Subcategory: "PDFs"},
		{Category: "Documentos", Subcategory: "Textos"},
		{Category: "Musica"},
		{Category: "Otros"},
	}
	assert.Equal(t, want, tax.Locations())
}

func TestCategories(t *testing.T) {
	tax := taxonomy.MustNew(sampleEntries())
	assert.Equal(t, []string{"Imagenes", "Documentos", "Musica"}, tax.Categories())
}

func TestEntries_AreNormalizedCopies(t *testing.T) {
	tax := taxonomy.MustNew(sampleEntries())

	entries := tax.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, []string{".mp3", ".flac"}, entries[4].Extensions)

	// Mutating the copy must not affect the taxonomy
	entries[0].Extensions[0] = ".gif"
	assert.Equal(t, types.Route{Category: "Imagenes", Subcategory: "Fotos"}, tax.Resolve(".jpg"))
	assert.Equal(t, types.FallbackRoute(), tax.Resolve(".gif"))
}
