package definition

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/matzehuels/procview/pkg/connector"
	perrors "github.com/matzehuels/procview/pkg/errors"
)

// LoadCatalogFile reads a catalog from disk. The file may hold a full
// process-definition response ({"edgesForNodes": [...]}) or the bare list.
func LoadCatalogFile(path string) (connector.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perrors.Wrap(perrors.ErrCodeNotFound, err, "catalog file %s", path)
		}
		return nil, err
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes either accepted catalog shape.
func ParseCatalog(raw []byte) (connector.Catalog, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cat connector.Catalog
		if err := json.Unmarshal(trimmed, &cat); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse catalog")
		}
		return cat, nil
	}
	var data Data
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse process definition")
	}
	return data.EdgesForNodes, nil
}
