package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/parser"
	"github.com/babyduck-lang/babyduck/pkg/quad"
)

// compileSource reads and compiles a .bd source file into an object
// program, the first three pipeline stages collapsed into one call for
// the CLI's convenience (Source -> Lexer -> Parser -> AST ->
// QuadGenerator -> Object Program).
func compileSource(path string, log *zap.Logger) (*object.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p := parser.New(string(data))
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	qp, err := quad.Generate(prog, log)
	if err != nil {
		return nil, err
	}

	return object.FromQuadProgram(qp)
}

// loadProgram resolves either a .bdo object file (loaded directly) or
// a .bd source file (compiled first), dispatching on the file
// extension.
func loadProgram(path string, log *zap.Logger) (*object.Program, error) {
	if filepath.Ext(path) == ".bdo" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		return object.Decode(f)
	}
	return compileSource(path, log)
}

// defaultObjectPath derives an output .bdo path from a source path,
// absent an explicit one.
func defaultObjectPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return sourcePath[:len(sourcePath)-len(ext)] + ".bdo"
}
