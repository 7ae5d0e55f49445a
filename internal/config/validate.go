package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/keymap"
	"github.com/thoreinstein/gertty/internal/palette"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError is one invariant a resolved Config breaks.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

func (e *FieldError) Error() string {
	if e.Value == nil || e.Value == "" {
		return fmt.Sprintf("%s: failed %q", e.Field, e.Rule)
	}
	return fmt.Sprintf("%s: failed %q (value %v)", e.Field, e.Rule, e.Value)
}

// Validate checks the invariants every resolved Config holds. It returns
// nil or an error marked ErrInvalidConfig listing each broken invariant.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrInvalidConfig, "config is nil")
	}

	var errs []error
	if err := structValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "validating configuration")
		}
		for _, fe := range verrs {
			errs = append(errs, &FieldError{Field: fe.Namespace(), Rule: fe.Tag(), Value: fe.Value()})
		}
	}

	if !cfg.palettes.Has(palette.Default) {
		errs = append(errs, errors.Newf("palette %q is missing", palette.Default))
	}
	if !cfg.keymaps.Has(keymap.Default) {
		errs = append(errs, errors.Newf("keymap %q is missing", keymap.Default))
	}
	if len(cfg.commentLinks) == 0 {
		errs = append(errs, errors.New("comment links must end with the URL rule"))
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.Wrap(errors.ErrInvalidConfig, strings.Join(msgs, "; "))
}
