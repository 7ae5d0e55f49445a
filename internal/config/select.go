package config

import (
	"strings"

	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
)

// SelectServer returns the first server record named name, or the first
// record when name is empty. An unknown name fails with ErrServerNotFound.
func SelectServer(doc *document.Document, name string) (*document.Server, error) {
	if len(doc.Servers) == 0 {
		return nil, errors.Wrap(errors.ErrSchemaViolation, "no servers configured")
	}
	if name == "" {
		return &doc.Servers[0], nil
	}
	for i := range doc.Servers {
		if doc.Servers[i].Name == name {
			return &doc.Servers[i], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrServerNotFound, "%q (known: %s)", name, strings.Join(ServerNames(doc), ", "))
}

// ServerNames lists the server names in document order.
func ServerNames(doc *document.Document) []string {
	names := make([]string, len(doc.Servers))
	for i, s := range doc.Servers {
		names[i] = s.Name
	}
	return names
}
