package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts compiler artifacts for inspection. Named integer
// types with a String method (token kinds, operators, opcodes) become strings.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)

	}

	value := reflect.ValueOf(v)

	if stringer, ok := v.(fmt.Stringer); ok && isInteger(value.Kind()) {
		return starlark.String(stringer.String())
	}

	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

func isInteger(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
