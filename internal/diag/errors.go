package diag

import "errors"

// Sentinels wrapped by the driver and config loader so FromError can classify
// failures without depending on those packages.
var (
	ErrRead   = errors.New("read failed")
	ErrWrite  = errors.New("write failed")
	ErrConfig = errors.New("invalid configuration")
)
