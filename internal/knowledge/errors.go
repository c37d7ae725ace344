package knowledge

import "errors"

var (
	ErrInvalidRule    = errors.New("invalid rule")
	ErrInvalidCatalog = errors.New("invalid issue catalog")
)
