package formats

import (
	"errors"
	"fmt"
	"strings"
)

// OBJ format errors.
var (
	ErrFileNotFound      = errors.New("cannot open OBJ file")
	ErrInvalidIndexZero  = errors.New("OBJ index 0 is not allowed")
	ErrIndexOutOfRange   = errors.New("OBJ index out of range")
	ErrDegenerateFace    = errors.New("face needs at least 3 vertex groups")
	ErrPolygonTooLarge   = errors.New("face exceeds max polygon size")
	ErrAllocationFailure = errors.New("vertex count exceeds index type capacity")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrReadFailed        = errors.New("reading OBJ data failed")
)

// Attribute channels named in OBJError.Channel.
const (
	ChannelPosition = "position"
	ChannelTexCoord = "texcoord"
	ChannelNormal   = "normal"
)

// OBJError describes where an OBJ load failed.
// errors.Is matches both the sentinel in Err and the underlying Cause.
type OBJError struct {
	Path      string // File path, set by LoadOBJ
	Line      int    // 1-based line of the failing statement (0 if unknown)
	Statement string // Keyword being processed: "v", "f", ...
	Channel   string // Attribute channel for face index errors
	Index     int    // Raw index as written in the file, when Channel is set
	Err       error  // One of the Err* sentinels
	Cause     error  // Underlying error, may be nil
}

func (e *OBJError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Statement)
	if e.Channel != "" {
		fmt.Fprintf(&b, " %s index %d", e.Channel, e.Index)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the sentinel and the cause to errors.Is and errors.As.
func (e *OBJError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
