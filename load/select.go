package load

import (
	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
)

// Selector extracts a value from a record. It is an expression over the
// fields of the record: a bare field name selects the field as is.
type Selector struct {
	source string
	expr   *govaluate.EvaluableExpression
}

func NewSelector(str string) (Selector, error) {
	expr, err := govaluate.NewEvaluableExpression(str)
	if err != nil {
		return Selector{}, errors.Wrapf(err, "%s: invalid selector", str)
	}
	return Selector{
		source: str,
		expr:   expr,
	}, nil
}

func (s Selector) String() string {
	return s.source
}

func (s Selector) Select(rec Record) (any, error) {
	if s.expr == nil {
		return nil, errors.New("empty selector")
	}
	v, err := s.expr.Evaluate(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: fail to select value", s.source)
	}
	return v, nil
}
