package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/mindfleet/internal/model"
)

var (
	// ErrUnknownStatus is returned for a status string with no canonical mapping
	ErrUnknownStatus = errors.New("unknown status")

	// ErrDuplicateID is returned when two employees share an id
	ErrDuplicateID = errors.New("duplicate employee id")

	// ErrEmptyID is returned for an employee without an id
	ErrEmptyID = errors.New("empty employee id")
)

// statusAliases maps accepted spellings onto canonical statuses
var statusAliases = map[string]model.Status{
	"pending":    model.StatusPending,
	"in_process": model.StatusInProcess,
	"addressed":  model.StatusAddressed,

	// Legacy export spellings
	"pendiente":  model.StatusPending,
	"en_proceso": model.StatusInProcess,
	"atendido":   model.StatusAddressed,
}

// ParseStatus normalizes a status string. Empty means pending.
func ParseStatus(s string) (model.Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "" {
		return model.StatusPending, nil
	}

	status, ok := statusAliases[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}
