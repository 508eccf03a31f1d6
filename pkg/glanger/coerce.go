// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// coerceArgs converts [params] into the go types the abi package expects for
// [inputs], so that callers can use *big.Int for every integer whatever the
// width the contract declares
func coerceArgs(inputs abi.Arguments, params []interface{}) ([]interface{}, error) {
	if len(inputs) != len(params) {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrBadArgument, len(inputs), len(params))
	}
	args := make([]interface{}, len(params))
	for i, input := range inputs {
		arg, err := coerce(input.Type, params[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d (%s %s): %w", ErrBadArgument, i, input.Type, input.Name, err)
		}
		args[i] = arg
	}
	return args, nil
}

func coerce(t abi.Type, v interface{}) (interface{}, error) {
	switch t.T {
	case abi.UintTy, abi.IntTy:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		target := t.GetType()
		if target == bigIntType {
			return n, nil
		}
		out := reflect.New(target).Elem()
		switch target.Kind() {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n.Sign() < 0 || !n.IsUint64() || out.OverflowUint(n.Uint64()) {
				return nil, fmt.Errorf("%s overflows %s", n, t)
			}
			out.SetUint(n.Uint64())
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !n.IsInt64() || out.OverflowInt(n.Int64()) {
				return nil, fmt.Errorf("%s overflows %s", n, t)
			}
			out.SetInt(n.Int64())
		default:
			return nil, fmt.Errorf("unsupported integer type %s", t)
		}
		return out.Interface(), nil
	case abi.AddressTy:
		return toAddress(v)
	default:
		return v, nil
	}
}

func toBig(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil integer")
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(n), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	default:
		return nil, fmt.Errorf("%w: %T is not an integer", ErrUnexpectedType, v)
	}
}

func toAddress(v interface{}) (common.Address, error) {
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case *common.Address:
		if a == nil {
			return common.Address{}, fmt.Errorf("nil address")
		}
		return *a, nil
	case string:
		if !common.IsHexAddress(a) {
			return common.Address{}, fmt.Errorf("%q is not a hex address", a)
		}
		return common.HexToAddress(a), nil
	default:
		return common.Address{}, fmt.Errorf("%w: %T is not an address", ErrUnexpectedType, v)
	}
}

func toBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %T is not a bool", ErrUnexpectedType, v)
	}
	return b, nil
}

func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T is not a string", ErrUnexpectedType, v)
	}
	return s, nil
}

// flattenTuple turns the anonymous struct the abi package builds for a tuple
// output into its positional fields
func flattenTuple(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return []interface{}{v}
	}
	out := make([]interface{}, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		out[i] = rv.Field(i).Interface()
	}
	return out
}

// bigs converts [values] to *big.Int, failing on the first non integer
func bigs(values []interface{}) ([]*big.Int, error) {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		n, err := toBig(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
