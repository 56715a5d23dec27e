package gridastar

import (
	"errors"

	"github.com/pdrpinto/gridastar/internal/trace"
)

var (
	// ErrInvalidDimension is returned when a grid is built with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrOutOfBounds is returned when a blocked cell lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrInvalidEndpoint is returned when a start or goal cell is out of
	// bounds or blocked.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrBadMap is returned by ParseGrid for malformed ASCII maps.
	ErrBadMap = errors.New("malformed grid map")

	// ErrBrokenChain signals a corrupted parent chain during path
	// reconstruction. It indicates a bug and is never expected.
	ErrBrokenChain = trace.ErrBrokenChain
)
