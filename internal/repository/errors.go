// Package repository holds one repository per table family. Every read
// filters out soft-deleted rows and every delete is a soft delete.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/docdesk/internal/database"
)

// ErrNotFound is returned when no live row matches. Handlers turn it into
// the resource's own "not found" message.
var ErrNotFound = errors.New("not found")

// live is the filter shared by every read.
const live = 0

func notFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if database.IsNotFound(err) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}

func softDelete() database.Row { return database.Row{"is_deleted": 1} }

func joinColumns(cols []string) string { return strings.Join(cols, ", ") }
