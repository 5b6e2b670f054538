package output

import (
	"fmt"
	"strings"

	"github.com/taxprep/tax-engine/internal/domain"
)

// Formatter renders a calculation Result. Implementations are pure: the same
// Result always produces the same bytes.
type Formatter interface {
	Format(result *domain.Result) ([]byte, error)
	// Name returns a short identifier used for selection and logging.
	Name() string
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
}

// ByName fetches a registered formatter, or an error listing the valid names.
func ByName(name string) (Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	names := make([]string, len(builtInFormatters))
	for i, f := range builtInFormatters {
		names[i] = f.Name()
	}
	return nil, fmt.Errorf("unknown output format %q (choose one of: %s)", name, strings.Join(names, ", "))
}
