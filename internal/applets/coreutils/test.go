// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
)

type (
	// testEval evaluates one test expression. Paths are resolved against
	// the invocation's working directory.
	testEval struct {
		ctx  context.Context
		args []string
		pos  int
	}

	testSyntaxError struct{ msg string }
)

func (e *testSyntaxError) Error() string { return e.msg }

// Test implements test, [ and [[. The status is 0 for true, 1 for false
// and 2 for a malformed expression.
func Test(ctx context.Context, argv []string) int {
	name, args := argv[0], argv[1:]

	closing := ""
	switch name {
	case "[":
		closing = "]"
	case "[[":
		closing = "]]"
	}
	if closing != "" {
		if len(args) == 0 || args[len(args)-1] != closing {
			applet.Errorf(ctx, name, "missing %s", closing)
			return 2
		}
		args = args[:len(args)-1]
	}

	ok, err := evalTest(ctx, args)
	if err != nil {
		applet.Errorf(ctx, name, "%v", err)
		return 2
	}
	if ok {
		return 0
	}
	return 1
}

// evalTest applies the POSIX rules for up to four arguments and falls back
// to a precedence parser for longer expressions.
func evalTest(ctx context.Context, args []string) (bool, error) {
	e := &testEval{ctx: ctx, args: args}

	switch len(args) {
	case 0:
		return false, nil
	case 1:
		return args[0] != "", nil
	case 2:
		if args[0] == "!" {
			return args[1] == "", nil
		}
		if isUnaryTestOp(args[0]) {
			return e.unary(args[0], args[1])
		}
		return false, &testSyntaxError{msg: fmt.Sprintf("%s: unknown operand", args[0])}
	case 3:
		if isBinaryTestOp(args[1]) {
			return e.binary(args[0], args[1], args[2])
		}
		if args[0] == "!" {
			v, err := evalTest(ctx, args[1:])
			return !v, err
		}
		if args[0] == "(" && args[2] == ")" {
			return args[1] != "", nil
		}
	case 4:
		if args[0] == "!" {
			v, err := evalTest(ctx, args[1:])
			return !v, err
		}
		if args[0] == "(" && args[3] == ")" {
			return evalTest(ctx, args[1:3])
		}
	}

	v, err := e.or()
	if err != nil {
		return false, err
	}
	if e.pos != len(e.args) {
		return false, &testSyntaxError{msg: fmt.Sprintf("%s: unexpected operator", e.args[e.pos])}
	}
	return v, nil
}

func (e *testEval) peek() (string, bool) {
	if e.pos >= len(e.args) {
		return "", false
	}
	return e.args[e.pos], true
}

func (e *testEval) next() (string, error) {
	tok, ok := e.peek()
	if !ok {
		return "", &testSyntaxError{msg: "argument expected"}
	}
	e.pos++
	return tok, nil
}

func (e *testEval) or() (bool, error) {
	v, err := e.and()
	if err != nil {
		return false, err
	}
	for {
		tok, ok := e.peek()
		if !ok || tok != "-o" {
			return v, nil
		}
		e.pos++
		rhs, err := e.and()
		if err != nil {
			return false, err
		}
		v = v || rhs
	}
}

func (e *testEval) and() (bool, error) {
	v, err := e.not()
	if err != nil {
		return false, err
	}
	for {
		tok, ok := e.peek()
		if !ok || tok != "-a" {
			return v, nil
		}
		e.pos++
		rhs, err := e.not()
		if err != nil {
			return false, err
		}
		v = v && rhs
	}
}

func (e *testEval) not() (bool, error) {
	if tok, ok := e.peek(); ok && tok == "!" && e.pos+1 < len(e.args) {
		e.pos++
		v, err := e.not()
		return !v, err
	}
	return e.primary()
}

func (e *testEval) primary() (bool, error) {
	tok, err := e.next()
	if err != nil {
		return false, err
	}

	if tok == "(" {
		v, err := e.or()
		if err != nil {
			return false, err
		}
		if closing, err := e.next(); err != nil || closing != ")" {
			return false, &testSyntaxError{msg: "missing )"}
		}
		return v, nil
	}

	if op, ok := e.peek(); ok && isBinaryTestOp(op) && e.pos+1 < len(e.args) {
		e.pos += 2
		return e.binary(tok, op, e.args[e.pos-1])
	}

	if isUnaryTestOp(tok) {
		if operand, ok := e.peek(); ok {
			e.pos++
			return e.unary(tok, operand)
		}
	}

	return tok != "", nil
}

func isUnaryTestOp(op string) bool {
	if len(op) != 2 || op[0] != '-' {
		return false
	}
	return strings.IndexByte("bcdefghkLnOprsStuwxzG", op[1]) >= 0
}

func isBinaryTestOp(op string) bool {
	switch op {
	case "=", "==", "!=", "<", ">", "-eq", "-ne", "-lt", "-le", "-gt", "-ge", "-nt", "-ot", "-ef":
		return true
	}
	return false
}

func (e *testEval) unary(op, operand string) (bool, error) {
	switch op {
	case "-n":
		return operand != "", nil
	case "-z":
		return operand == "", nil
	case "-t":
		fd, err := testInt(operand)
		if err != nil {
			return false, err
		}
		return term.IsTerminal(int(fd)), nil
	}

	path := applet.Path(e.ctx, operand)
	if op == "-h" || op == "-L" {
		fi, err := os.Lstat(path)
		return err == nil && fi.Mode()&os.ModeSymlink != 0, nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return false, nil
	}
	mode := fi.Mode()

	switch op {
	case "-e":
		return true, nil
	case "-f":
		return mode.IsRegular(), nil
	case "-d":
		return mode.IsDir(), nil
	case "-b":
		return mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0, nil
	case "-c":
		return mode&os.ModeCharDevice != 0, nil
	case "-p":
		return mode&os.ModeNamedPipe != 0, nil
	case "-S":
		return mode&os.ModeSocket != 0, nil
	case "-s":
		return fi.Size() > 0, nil
	case "-u":
		return mode&os.ModeSetuid != 0, nil
	case "-g":
		return mode&os.ModeSetgid != 0, nil
	case "-k":
		return mode&os.ModeSticky != 0, nil
	case "-r":
		return accessible(path, accessRead), nil
	case "-w":
		return accessible(path, accessWrite), nil
	case "-x":
		return accessible(path, accessExec), nil
	case "-O":
		return ownedByEffective(fi, true), nil
	case "-G":
		return ownedByEffective(fi, false), nil
	}
	return false, &testSyntaxError{msg: fmt.Sprintf("%s: unknown operator", op)}
}

func (e *testEval) binary(lhs, op, rhs string) (bool, error) {
	switch op {
	case "=", "==":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	case "<":
		return lhs < rhs, nil
	case ">":
		return lhs > rhs, nil
	case "-nt", "-ot", "-ef":
		return e.compareFiles(lhs, op, rhs), nil
	}

	a, err := testInt(lhs)
	if err != nil {
		return false, err
	}
	b, err := testInt(rhs)
	if err != nil {
		return false, err
	}
	switch op {
	case "-eq":
		return a == b, nil
	case "-ne":
		return a != b, nil
	case "-lt":
		return a < b, nil
	case "-le":
		return a <= b, nil
	case "-gt":
		return a > b, nil
	default: // -ge
		return a >= b, nil
	}
}

func (e *testEval) compareFiles(lhs, op, rhs string) bool {
	a, errA := os.Stat(applet.Path(e.ctx, lhs))
	b, errB := os.Stat(applet.Path(e.ctx, rhs))
	switch op {
	case "-nt":
		return errA == nil && (errB != nil || a.ModTime().After(b.ModTime()))
	case "-ot":
		return errB == nil && (errA != nil || a.ModTime().Before(b.ModTime()))
	default: // -ef
		return errA == nil && errB == nil && os.SameFile(a, b)
	}
}

func testInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &testSyntaxError{msg: fmt.Sprintf("invalid number '%s'", s)}
	}
	return n, nil
}
