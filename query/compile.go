// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"time"

	"github.com/accidentdash/accidentdash/record"
)

// An Error is a syntax or type error in a filter expression.
type Error struct {
	Offset int // byte offset of the error in the expression
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("column %d: %s", e.Offset+1, e.Msg)
}

// A kind is the type of an expression's result.
type kind int

const (
	boolKind kind = iota
	numberKind
	stringKind
	timeKind
)

var kindNames = [...]string{"bool", "number", "string", "time"}

func (k kind) String() string { return kindNames[k] }

// A node is a compiled expression. Its dynamic type is one of boolFn,
// numberFn, stringFn, or timeFn. Numbers are constant.Values so that
// integer arithmetic is exact; an unknown value is a missing number.
// A zero time is a missing time.
type node interface {
	kind() kind
}

type (
	boolFn   func(r record.Record) bool
	numberFn func(r record.Record) constant.Value
	stringFn func(r record.Record) string
	timeFn   func(r record.Record) time.Time
)

func (boolFn) kind() kind   { return boolKind }
func (numberFn) kind() kind { return numberKind }
func (stringFn) kind() kind { return stringKind }
func (timeFn) kind() kind   { return timeKind }

type compiler struct {
	fset  *token.FileSet
	names map[string]node
}

// compile parses expr and compiles it to a predicate, resolving
// identifiers in names.
func compile(expr string, names map[string]node) (boolFn, error) {
	c := &compiler{token.NewFileSet(), names}
	x, err := parser.ParseExprFrom(c.fset, "", expr, 0)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			return nil, &Error{list[0].Pos.Offset, list[0].Msg}
		}
		return nil, err
	}
	n, err := c.expr(x)
	if err != nil {
		return nil, err
	}
	return c.asBool(x, n)
}

func (c *compiler) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &Error{c.fset.Position(pos).Offset, fmt.Sprintf(format, args...)}
}

// check returns an error unless n has one of kinds.
func (c *compiler) check(x ast.Expr, n node, kinds ...kind) error {
	for _, k := range kinds {
		if n.kind() == k {
			return nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	want := strings.Join(names, " or ")
	if len(names) > 2 {
		want = strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
	return c.errorf(x.Pos(), "%s has type %s, want %s", types.ExprString(x), n.kind(), want)
}

func (c *compiler) asBool(x ast.Expr, n node) (boolFn, error) {
	if err := c.check(x, n, boolKind); err != nil {
		return nil, err
	}
	return n.(boolFn), nil
}

func (c *compiler) asNumber(x ast.Expr, n node) (numberFn, error) {
	if err := c.check(x, n, numberKind); err != nil {
		return nil, err
	}
	return n.(numberFn), nil
}

func (c *compiler) asString(x ast.Expr, n node) (stringFn, error) {
	if err := c.check(x, n, stringKind); err != nil {
		return nil, err
	}
	return n.(stringFn), nil
}

func (c *compiler) expr(x ast.Expr) (node, error) {
	switch x := x.(type) {
	case *ast.ParenExpr:
		return c.expr(x.X)
	case *ast.Ident:
		if n, ok := c.names[x.Name]; ok {
			return n, nil
		}
		return nil, c.errorf(x.Pos(), "undefined: %s", x.Name)
	case *ast.BasicLit:
		return c.literal(x)
	case *ast.UnaryExpr:
		return c.unary(x)
	case *ast.BinaryExpr:
		return c.binary(x)
	case *ast.CallExpr:
		return c.call(x)
	}
	return nil, c.errorf(x.Pos(), "unsupported expression %s", types.ExprString(x))
}

func (c *compiler) literal(x *ast.BasicLit) (node, error) {
	v := constant.MakeFromLiteral(x.Value, x.Kind, 0)
	switch x.Kind {
	case token.INT, token.FLOAT:
		return numberFn(func(record.Record) constant.Value { return v }), nil
	case token.STRING:
		s := constant.StringVal(v)
		return stringFn(func(record.Record) string { return s }), nil
	}
	return nil, c.errorf(x.Pos(), "unsupported literal %s", x.Value)
}

func (c *compiler) unary(x *ast.UnaryExpr) (node, error) {
	n, err := c.expr(x.X)
	if err != nil {
		return nil, err
	}
	op := x.Op
	switch op {
	case token.NOT:
		f, err := c.asBool(x.X, n)
		if err != nil {
			return nil, err
		}
		return boolFn(func(r record.Record) bool { return !f(r) }), nil
	case token.ADD, token.SUB:
		f, err := c.asNumber(x.X, n)
		if err != nil {
			return nil, err
		}
		return numberFn(func(r record.Record) constant.Value {
			return constant.UnaryOp(op, f(r), 0)
		}), nil
	}
	return nil, c.errorf(x.OpPos, "unsupported operator %s", op)
}

func (c *compiler) binary(x *ast.BinaryExpr) (node, error) {
	l, err := c.expr(x.X)
	if err != nil {
		return nil, err
	}
	r, err := c.expr(x.Y)
	if err != nil {
		return nil, err
	}
	op := x.Op
	switch op {
	case token.LAND, token.LOR:
		lf, err := c.asBool(x.X, l)
		if err != nil {
			return nil, err
		}
		rf, err := c.asBool(x.Y, r)
		if err != nil {
			return nil, err
		}
		if op == token.LAND {
			return boolFn(func(rec record.Record) bool { return lf(rec) && rf(rec) }), nil
		}
		return boolFn(func(rec record.Record) bool { return lf(rec) || rf(rec) }), nil

	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
		if lf, ok := l.(stringFn); ok && op == token.ADD {
			rf, err := c.asString(x.Y, r)
			if err != nil {
				return nil, err
			}
			return stringFn(func(rec record.Record) string { return lf(rec) + rf(rec) }), nil
		}
		lf, err := c.asNumber(x.X, l)
		if err != nil {
			return nil, err
		}
		rf, err := c.asNumber(x.Y, r)
		if err != nil {
			return nil, err
		}
		return numberFn(func(rec record.Record) constant.Value {
			return arith(lf(rec), op, rf(rec))
		}), nil

	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return c.compare(x, l, r)
	}
	return nil, c.errorf(x.OpPos, "unsupported operator %s", op)
}

// compare compiles a comparison. Missing values never compare, so
// both == and != are false when either side is missing.
func (c *compiler) compare(x *ast.BinaryExpr, l, r node) (node, error) {
	kinds := []kind{boolKind, numberKind, stringKind, timeKind}
	if x.Op != token.EQL && x.Op != token.NEQ {
		kinds = kinds[1:]
	}
	if err := c.check(x.X, l, kinds...); err != nil {
		return nil, err
	}
	if l.kind() != r.kind() {
		return nil, c.errorf(x.OpPos, "mismatched types %s and %s in %s", l.kind(), r.kind(), types.ExprString(x))
	}
	op := x.Op
	if lt, ok := l.(timeFn); ok {
		rt := r.(timeFn)
		return boolFn(func(rec record.Record) bool {
			a, b := lt(rec), rt(rec)
			if a.IsZero() || b.IsZero() {
				return false
			}
			return constant.Compare(constant.MakeInt64(a.UnixNano()), op, constant.MakeInt64(b.UnixNano()))
		}), nil
	}
	lv, rv := value(l), value(r)
	return boolFn(func(rec record.Record) bool {
		a, b := lv(rec), rv(rec)
		if a.Kind() == constant.Unknown || b.Kind() == constant.Unknown {
			return false
		}
		return constant.Compare(a, op, b)
	}), nil
}

// value returns a function that evaluates a bool, number, or string
// node as a constant.Value.
func value(n node) func(record.Record) constant.Value {
	switch n := n.(type) {
	case boolFn:
		return func(r record.Record) constant.Value { return constant.MakeBool(n(r)) }
	case numberFn:
		return n
	case stringFn:
		return func(r record.Record) constant.Value { return constant.MakeString(n(r)) }
	}
	panic(fmt.Sprintf("no constant value for %s", n.kind()))
}

func (c *compiler) call(x *ast.CallExpr) (node, error) {
	id, ok := x.Fun.(*ast.Ident)
	if !ok {
		return nil, c.errorf(x.Pos(), "cannot call %s", types.ExprString(x.Fun))
	}
	switch id.Name {
	case "upper", "lower", "date":
	default:
		return nil, c.errorf(id.Pos(), "undefined: %s", id.Name)
	}
	if len(x.Args) != 1 {
		return nil, c.errorf(x.Lparen, "%s takes 1 argument, not %d", id.Name, len(x.Args))
	}
	arg := x.Args[0]
	if id.Name == "date" {
		return c.date(arg)
	}

	n, err := c.expr(arg)
	if err != nil {
		return nil, err
	}
	f, err := c.asString(arg, n)
	if err != nil {
		return nil, err
	}
	conv := strings.ToUpper
	if id.Name == "lower" {
		conv = strings.ToLower
	}
	return stringFn(func(r record.Record) string { return conv(f(r)) }), nil
}

// date compiles date("...") to a time constant.
func (c *compiler) date(arg ast.Expr) (node, error) {
	lit, ok := arg.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, c.errorf(arg.Pos(), "date argument must be a string literal")
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, c.errorf(lit.Pos(), "bad string %s", lit.Value)
	}
	t, err := record.ParseTime(s)
	if err != nil {
		return nil, c.errorf(lit.Pos(), "bad date %q", s)
	}
	return timeFn(func(record.Record) time.Time { return t }), nil
}

// arith applies an arithmetic operator. Missing operands, division by
// zero, and remainders of non-integers give an unknown value.
func arith(x constant.Value, op token.Token, y constant.Value) constant.Value {
	if x.Kind() == constant.Unknown || y.Kind() == constant.Unknown {
		return constant.MakeUnknown()
	}
	switch op {
	case token.QUO:
		if constant.Sign(y) == 0 {
			return constant.MakeUnknown()
		}
	case token.REM:
		x, y = constant.ToInt(x), constant.ToInt(y)
		if x.Kind() != constant.Int || y.Kind() != constant.Int || constant.Sign(y) == 0 {
			return constant.MakeUnknown()
		}
	}
	return constant.BinaryOp(x, op, y)
}
