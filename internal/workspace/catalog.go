package workspace

import (
	"context"

	"github.com/matzehuels/procview/pkg/connector"
	"github.com/matzehuels/procview/pkg/definition"
)

// CatalogSource supplies the connector catalog used for new edges.
type CatalogSource interface {
	Catalog(ctx context.Context) (connector.Catalog, error)
}

// StaticCatalog serves a fixed catalog, typically loaded from a file.
type StaticCatalog connector.Catalog

func (c StaticCatalog) Catalog(context.Context) (connector.Catalog, error) {
	return connector.Catalog(c), nil
}

// RemoteCatalog fetches the catalog of one processing type from the
// process-definition service.
type RemoteCatalog struct {
	Client         *definition.Client
	ProcessingType string
}

func (c RemoteCatalog) Catalog(ctx context.Context) (connector.Catalog, error) {
	return c.Client.Catalog(ctx, c.ProcessingType, false)
}
