//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/MeKo-Tech/colorparser/convert"
	"github.com/MeKo-Tech/colorparser/internal/ops"
)

// jsName turns "hex-to-rgb" into "colorparserHexToRgb".
func jsName(op ops.Op) string {
	var b strings.Builder
	b.WriteString("colorparser")
	for _, part := range strings.Split(op.Name, "-") {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func result(out string, err error) any {
	if err != nil {
		return map[string]any{"error": err.Error(), "kind": convert.Kind(err)}
	}
	return map[string]any{"result": out}
}

// wrap exposes op to JavaScript. Hex ops take one string; numeric ops take
// three numbers or a single "a,b,c" / functional-notation string.
func wrap(op ops.Op) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if op.Text != nil {
			if len(args) < 1 || args[0].Type() != js.TypeString {
				return result("", fmt.Errorf("%w: %s expects a string", convert.ErrFormat, op.Name))
			}
			return result(op.Text(args[0].String()))
		}

		if len(args) == 1 && args[0].Type() == js.TypeString {
			return result(op.Apply(args[0].String()))
		}
		if len(args) < 3 {
			return result("", fmt.Errorf("%w: %s expects 3 numbers, got %d arguments", convert.ErrFormat, op.Name, len(args)))
		}
		var v [3]float64
		for i := range v {
			if args[i].Type() != js.TypeNumber {
				return result("", fmt.Errorf("%w: %s argument %d is not a number", convert.ErrFormat, op.Name, i+1))
			}
			v[i] = args[i].Float()
		}
		return result(op.Triple(v[0], v[1], v[2]))
	})
}

func convertColor(this js.Value, args []js.Value) any {
	if len(args) < 2 || args[0].Type() != js.TypeString || args[1].Type() != js.TypeString {
		return result("", fmt.Errorf("%w: convert expects (value, to)", convert.ErrFormat))
	}
	to, err := convert.ParseFormat(args[1].String())
	if err != nil {
		return result("", err)
	}
	return result(convert.Convert(args[0].String(), to))
}

func main() {
	c := make(chan struct{})

	for _, op := range ops.All {
		js.Global().Set(jsName(op), wrap(op))
	}
	js.Global().Set("colorparserConvert", js.FuncOf(convertColor))

	fmt.Println("colorparser WASM module loaded")
	<-c
}
