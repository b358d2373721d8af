package api

import (
	"fmt"

	"github.com/okian/leetview/internal/domain/types"
)

// Response shapes shared with the service layer.
type (
	Entry         = types.FileEntry
	Solution      = types.Solution
	RatingReceipt = types.RatingReceipt
	Language      = types.Language
)

func errMissing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrBadRequest, field)
}
