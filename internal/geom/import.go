package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"givio/internal/giv"
)

// Extensions lists the file extensions Import understands.
var Extensions = []string{".giv", ".wkt", ".geojson", ".json", ".csv", ".kml"}

// Supported reports whether Import can read path.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Import loads path into a Giv, choosing the reader by file extension.
// Options only apply to giv files.
func Import(path string, opts ...giv.Option) (*giv.Giv, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".giv":
		return giv.Load(path, opts...)
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(b))
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	}
	return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
}
