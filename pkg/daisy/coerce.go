package daisy

import (
	"fmt"
	"math"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// reflectOp wraps an arbitrary function whose first parameter accepts T and
// which returns T or (T, error).
func reflectOp[T any](fv reflect.Value) (Op[T], error) {
	ft := fv.Type()
	valueType := reflect.TypeOf((*T)(nil)).Elem()

	if ft.NumIn() == 0 || (ft.NumIn() == 1 && ft.IsVariadic()) || !valueType.AssignableTo(ft.In(0)) {
		return nil, fmt.Errorf("%w: %s does not accept %s as first parameter", ErrSignature, ft, valueType)
	}
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return nil, fmt.Errorf("%w: %s second result must be error", ErrSignature, ft)
		}
	default:
		return nil, fmt.Errorf("%w: %s must return %s or (%s, error)", ErrSignature, ft, valueType, valueType)
	}
	if !ft.Out(0).AssignableTo(valueType) {
		return nil, fmt.Errorf("%w: %s does not return %s", ErrSignature, ft, valueType)
	}

	return func(v T, args ...any) (T, error) {
		var zero T
		in, err := coerceArgs(ft, args)
		if err != nil {
			return zero, err
		}
		in[0] = reflect.ValueOf(&v).Elem()

		out := fv.Call(in)
		if len(out) == 2 && !IsNil(out[1]) {
			return zero, out[1].Interface().(error)
		}
		return fromValue[T](out[0]), nil
	}, nil
}

// coerceArgs builds the reflective argument list for ft. Slot 0 is left for
// the chain value.
func coerceArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn() - 1
	variadic := ft.IsVariadic()
	if variadic {
		fixed--
	}
	if len(args) < fixed || (!variadic && len(args) > fixed) {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArity, fixed, len(args))
	}

	in := make([]reflect.Value, len(args)+1)
	for i, a := range args {
		var pt reflect.Type
		if variadic && i >= fixed {
			pt = ft.In(ft.NumIn() - 1).Elem()
		} else {
			pt = ft.In(i + 1)
		}
		v, err := coerce(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i+1] = v
	}
	return in, nil
}

func coerce(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		if nilable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil to %s", ErrArgType, t)
	}

	v := reflect.ValueOf(a)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case numeric(v.Kind()) && numeric(t.Kind()):
		if !fits(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrArgType, a, t)
		}
		return v.Convert(t), nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrArgType, v.Type(), t)
}

func fromValue[T any](v reflect.Value) T {
	var out T
	if v.IsValid() {
		reflect.ValueOf(&out).Elem().Set(v)
	}
	return out
}

// IsNil reports whether v holds nil, looking through reflect.Value and
// nilable kinds.
func IsNil(i any) bool {
	if i == nil {
		return true
	}
	v, ok := i.(reflect.Value)
	if !ok {
		v = reflect.ValueOf(i)
	}
	if !v.IsValid() {
		return true
	}
	return nilable(v.Kind()) && v.IsNil()
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func numeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func signed(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func unsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

// fits reports whether the numeric value v converts to t without
// truncation, wrap-around or overflow.
func fits(v reflect.Value, t reflect.Type) bool {
	target := reflect.Zero(t)
	switch k := v.Kind(); {
	case signed(k):
		i := v.Int()
		switch {
		case signed(t.Kind()):
			return !target.OverflowInt(i)
		case unsigned(t.Kind()):
			return i >= 0 && !target.OverflowUint(uint64(i))
		default:
			return !target.OverflowFloat(float64(i))
		}
	case unsigned(k):
		u := v.Uint()
		switch {
		case signed(t.Kind()):
			return u <= math.MaxInt64 && !target.OverflowInt(int64(u))
		case unsigned(t.Kind()):
			return !target.OverflowUint(u)
		default:
			return !target.OverflowFloat(float64(u))
		}
	default:
		f := v.Float()
		switch {
		case signed(t.Kind()):
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !target.OverflowInt(int64(f))
		case unsigned(t.Kind()):
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !target.OverflowUint(uint64(f))
		default:
			return !target.OverflowFloat(f)
		}
	}
}
