package formatter

import (
	"go/format"
	"strings"

	"github.com/cockroachdb/errors"
)

// Formatter is responsible for formatting Go code according to standard conventions
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format runs gofmt over code. code may be a whole file or a bare list of
// declarations without a package clause.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse Go code")
	}

	return string(formatted), nil
}
