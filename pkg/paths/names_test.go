// pkg/paths/names_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test stem/extension splitting rules

package paths_test

import (
	"testing"

	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name string
		stem string
		ext  string
	}{
		{"report.pdf", "report", ".pdf"},
		{"IMG.JPG", "IMG", ".JPG"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"..hidden.txt", "..hidden", ".txt"},
		{".config.yaml", ".config", ".yaml"},
		{"trailing.", "trailing", "."},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := paths.SplitName(tt.name)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}
