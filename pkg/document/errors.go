package document

import perrors "github.com/matzehuels/procview/pkg/errors"

func groupNotFound(id string) error {
	return perrors.New(perrors.ErrCodeNotFound, "group %q not found", id)
}

func nodeNotFound(id string) error {
	return perrors.New(perrors.ErrCodeNotFound, "node %q not found", id)
}
