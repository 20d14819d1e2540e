// Package pgerr classifies low-level database failures into the application
// error taxonomy. A write that dies because the store is unreachable must
// surface as a connectivity error, or the offline queue can never intercept
// it; every other failure passes through untouched.
package pgerr

import (
	"database/sql/driver"
	"errors"
	"net"

	"orderdesk/internal/pkg/errs"
)

// Classify wraps connection-level failures in a connectivity error.
// Query-level and constraint errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return errs.NewConnectivityErrorWithCause("database", err)
	}
	return err
}
