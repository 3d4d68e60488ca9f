package charts

import (
	"reflect"
	"time"
)

// Key is the set of types usable as the x-key of a buffered point.
type Key interface {
	~float64 | time.Time
}

type Point[T, U ScalerConstraint] struct {
	X T
	Y U
}

func NumberPoint(x, y float64) Point[float64, float64] {
	return Point[float64, float64]{
		X: x,
		Y: y,
	}
}

func TimePoint(x time.Time, y float64) Point[time.Time, float64] {
	return Point[time.Time, float64]{
		X: x,
		Y: y,
	}
}

// keyDiff returns a - b. Time keys are measured in nanoseconds.
func keyDiff[T Key](a, b T) float64 {
	switch x := any(a).(type) {
	case time.Time:
		return float64(x.Sub(any(b).(time.Time)))
	case float64:
		return x - any(b).(float64)
	default:
		return reflect.ValueOf(a).Float() - reflect.ValueOf(b).Float()
	}
}

func keyLess[T Key](a, b T) bool {
	return keyDiff(a, b) < 0
}
