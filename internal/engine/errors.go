package engine

import "errors"

// Sentinel lookup errors. Modules match on these to distinguish lookup
// failures from collaborator failures.
var (
	ErrActorNotFound    = errors.New("actor not found")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrMaterialNotFound = errors.New("material not found")
	ErrSocketNotFound   = errors.New("socket not found")
)
