// certificate/errors.go
package certificate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPDF reports a serialized certificate of zero bytes. Callers must
// treat this as a generation failure even though no draw step errored.
var ErrEmptyPDF = errors.New("generated PDF is empty")

// ValidationError aggregates every missing or invalid field found on a
// registration so an operator can fix all problems in one pass instead of
// discovering them one at a time.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("missing required certificate data:\n")
	for _, p := range e.Problems {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	b.WriteString("\nPlease edit the qualification and fill in all required fields.")
	return b.String()
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
