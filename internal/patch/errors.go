package patch

import "errors"

// Locator errors. All are fatal for the operation that raises them; no partial
// result is produced and the origin file is never touched.
var (
	ErrLocatorEmpty     = errors.New("locator text is empty")
	ErrLocatorNotFound  = errors.New("locator not found")
	ErrLocatorAmbiguous = errors.New("locator matches more than once")
	ErrLocatorOrder     = errors.New("end locator matches before start locator")
)

// Plan errors.
var (
	ErrPlanNoOps           = errors.New("plan contains no operations")
	ErrPlanUnknownOp       = errors.New("unknown operation")
	ErrPlanPathRequired    = errors.New("operation path is required")
	ErrPlanPayloadConflict = errors.New("payload and payload_file are mutually exclusive")
)

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidOccurrence  = errors.New("invalid occurrence (must be first, last, or unique)")
)
