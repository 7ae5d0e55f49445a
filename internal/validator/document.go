package validator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/schema"
)

// ValidateDocument checks the document named by opts without prompting:
// it must parse and match the schema, and every server in it must
// resolve. opts.Server is ignored.
func ValidateDocument(ctx context.Context, opts config.Options) *Result {
	result := &Result{}

	path, err := opts.DocumentPath()
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}
	result.Path = path

	raw, info, err := document.ReadRaw(path)
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}

	if err := schema.Validate(raw); err != nil {
		var verr *schema.ViolationError
		if !errors.As(err, &verr) {
			result.AddError("", err.Error(), nil)
			return result
		}
		for _, issue := range verr.Issues {
			result.AddError(fieldPath(issue.Path), issue.Message, nil)
		}
		return result
	}

	doc, err := document.Decode(raw)
	if err != nil {
		result.AddError("", err.Error(), nil)
		return result
	}
	doc.Path = path
	doc.Mode = info.Mode().Perm()

	opts.NoPrompt = true
	opts.Credentials = nil
	for i, srv := range doc.Servers {
		field := fmt.Sprintf("servers[%d]", i)
		serverCtx := map[string]string{"server": srv.Name}

		if srv.VerifySSL != nil && !*srv.VerifySSL {
			result.AddWarning(field+".verify-ssl", "TLS certificate verification is disabled", false).Context = serverCtx
		}

		opts.Server = srv.Name
		if _, err := config.Resolve(ctx, doc, opts); err != nil {
			result.AddError(field, err.Error(), nil).Context = serverCtx
		}
	}
	return result
}

// fieldPath turns a JSON pointer such as "/servers/0/url" into
// "servers[0].url".
func fieldPath(pointer string) string {
	var sb strings.Builder
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		if token == "" {
			continue
		}
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		if _, err := strconv.Atoi(token); err == nil {
			sb.WriteString("[" + token + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(token)
	}
	return sb.String()
}
