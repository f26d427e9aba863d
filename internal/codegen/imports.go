package codegen

import (
	"go/scanner"
	"go/token"
	"slices"
	"strings"
)

// CollectTextImports returns the file imports referenced as `pkg.` inside
// Go expression texts such as default values. The texts are only tokenised.
func CollectTextImports(texts []string, fileImports []ImportInfo) []ImportInfo {
	byName := make(map[string]ImportInfo, len(fileImports))
	for _, imp := range fileImports {
		byName[imp.Name()] = imp
	}
	needed := make(map[string]ImportInfo)
	for _, text := range texts {
		for _, name := range qualifiers(text) {
			if imp, ok := byName[name]; ok {
				needed[imp.Path] = imp
			}
		}
	}
	return sortedImports(needed)
}

// MergeImports combines import lists, dropping duplicate paths.
func MergeImports(lists ...[]ImportInfo) []ImportInfo {
	needed := make(map[string]ImportInfo)
	for _, list := range lists {
		for _, imp := range list {
			if _, ok := needed[imp.Path]; !ok {
				needed[imp.Path] = imp
			}
		}
	}
	return sortedImports(needed)
}

// qualifiers lists identifiers immediately followed by a period.
func qualifiers(text string) []string {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))
	var s scanner.Scanner
	s.Init(file, src, nil, 0)
	var (
		out  []string
		prev string
		dot  bool
	)
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		switch {
		case tok == token.IDENT && !dot:
			prev = lit
			continue
		case tok == token.PERIOD && prev != "":
			out = append(out, prev)
		}
		dot = tok == token.PERIOD
		prev = ""
	}
	return out
}

func sortedImports(m map[string]ImportInfo) []ImportInfo {
	imports := make([]ImportInfo, 0, len(m))
	for _, imp := range m {
		imports = append(imports, imp)
	}
	slices.SortFunc(imports, func(a, b ImportInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return imports
}
