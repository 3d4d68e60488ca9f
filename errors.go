package charts

import (
	"fmt"
)

type DuplicateSeriesError struct {
	ID string
}

func (e *DuplicateSeriesError) Error() string {
	return fmt.Sprintf("serie with id %s already exists", e.ID)
}

type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

type UnsupportedAxisTypeError struct {
	Kind ScaleKind
}

func (e *UnsupportedAxisTypeError) Error() string {
	if e.Kind == "" {
		return "axis type not given"
	}
	return fmt.Sprintf("%s: unsupported axis type", e.Kind)
}

func invalidConfig(field, reason string) error {
	return &InvalidConfigurationError{
		Field:  field,
		Reason: reason,
	}
}
