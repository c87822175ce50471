package types

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/connectlabs/optimiser/common"
	"github.com/connectlabs/optimiser/common/amount"
	"github.com/pkg/errors"
)

// IInteractor executes contract methods with call-level atomicity
type IInteractor interface {
	Exec(cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)
}

type interactor struct {
	ctx *Context
}

// NewInteractor returns an IInteractor over the context
func NewInteractor(ctx *Context) IInteractor {
	return &interactor{ctx: ctx}
}

// Exec runs the method under a snapshot; an error reverts every state
// change the call made, including changes of nested calls
func (i *interactor) Exec(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	if len(MethodName) == 0 {
		return nil, errors.WithStack(ErrInvalidMethodName)
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}
	from := Cc.from
	if Cc.cont != Addr {
		from = Cc.cont
	}
	ncc := &ContractContext{
		cont: Addr,
		from: from,
		ctx:  i.ctx,
		Exec: i.Exec,
	}

	sn := i.ctx.Snapshot()
	results, err := i._exec(ncc, cont, MethodName, Args)
	if err != nil {
		i.ctx.Revert(sn)
		return nil, err
	}
	i.ctx.Commit(sn)
	return results, nil
}

func (i *interactor) _exec(cc *ContractContext, cont Contract, MethodName string, Args []interface{}) (results []interface{}, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Errorf("occur panic %v call method %v of %v", v, MethodName, cont.Address())
		}
	}()
	method, err := methodByName(cont, MethodName)
	if err != nil {
		return nil, err
	}
	mt := method.Type()
	if mt.NumIn() != len(Args)+1 {
		return nil, errors.Errorf("invalid inputs of method %v expect %v got %v", MethodName, mt.NumIn()-1, len(Args))
	}
	in := make([]reflect.Value, 0, len(Args)+1)
	in = append(in, reflect.ValueOf(cc))
	for idx, arg := range Args {
		v, err := inputConv(arg, mt.In(idx + 1))
		if err != nil {
			return nil, errors.WithMessagef(err, "argument %v of method %v", idx, MethodName)
		}
		in = append(in, v)
	}
	return getResults(method.Call(in))
}

func methodByName(cont Contract, MethodName string) (reflect.Value, error) {
	front := reflect.ValueOf(cont.Front())
	method := front.MethodByName(strings.ToUpper(MethodName[:1]) + MethodName[1:])
	if method.Kind() != reflect.Func {
		return reflect.Value{}, errors.WithMessagef(ErrNotExistMethod, "%v of %v", MethodName, cont.Name())
	}
	return method, nil
}

var amountType = reflect.TypeOf(&amount.Amount{})

func inputConv(arg interface{}, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type() == want || v.Type().AssignableTo(want) {
		return v, nil
	}
	if want == amountType {
		if bi, ok := arg.(*big.Int); ok {
			return reflect.ValueOf(&amount.Amount{Int: bi}), nil
		}
	}
	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}
	return reflect.Value{}, errors.WithMessagef(ErrInvalidArgument, "expect %v got %T", want, arg)
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func getResults(rvs []reflect.Value) ([]interface{}, error) {
	results := []interface{}{}
	for _, rv := range rvs {
		if rv.Type().Implements(errType) {
			if !rv.IsNil() {
				return nil, rv.Interface().(error)
			}
			continue
		}
		results = append(results, rv.Interface())
	}
	return results, nil
}
