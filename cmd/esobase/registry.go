package main

import (
	"fmt"

	"esobase/syntax"
	"esobase/syntax/assembly"
	"esobase/syntax/brainfuck"
	"esobase/syntax/dt"
	"esobase/syntax/ook"
	"esobase/syntax/whitespace"
)

// frontEnd bundles a named surface syntax's compiler and, where one
// exists, its decompiler (spec.md §4 lists decompilers only for
// Whitespace, DT, and Assembly).
type frontEnd struct {
	name       string
	compiler   syntax.Compiler
	decompiler syntax.Decompiler
}

var frontEnds = map[string]frontEnd{
	"whitespace": {
		name:       "whitespace",
		compiler:   syntax.CompilerFunc(whitespace.Compile),
		decompiler: syntax.DecompilerFunc(whitespace.Decompile),
	},
	"dt": {
		name:       "dt",
		compiler:   syntax.CompilerFunc(dt.Compile),
		decompiler: syntax.DecompilerFunc(dt.Decompile),
	},
	"assembly": {
		name:       "assembly",
		compiler:   syntax.CompilerFunc(assembly.Compile),
		decompiler: syntax.DecompilerFunc(assembly.Decompile),
	},
	"brainfuck": {
		name:     "brainfuck",
		compiler: syntax.CompilerFunc(brainfuck.Compile),
	},
	"ook": {
		name:     "ook",
		compiler: syntax.CompilerFunc(ook.Compile),
	},
}

func lookupFrontEnd(name string) (frontEnd, error) {
	f, ok := frontEnds[name]
	if !ok {
		return frontEnd{}, fmt.Errorf("💥 unknown syntax %q (want one of whitespace, dt, assembly, brainfuck, ook)", name)
	}
	return f, nil
}

func lookupDecompiler(name string) (syntax.Decompiler, error) {
	f, err := lookupFrontEnd(name)
	if err != nil {
		return nil, err
	}
	if f.decompiler == nil {
		return nil, fmt.Errorf("💥 syntax %q has no decompiler", name)
	}
	return f.decompiler, nil
}
