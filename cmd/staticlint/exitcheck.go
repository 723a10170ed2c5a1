package main

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// NoDirectOsExit запрещает прямые вызовы os.Exit в функции main пакета main.
// nolint:gochecknoglobals
var NoDirectOsExit = &analysis.Analyzer{
	Name: "nodirectosexit",
	Doc:  "check for direct os.Exit calls in main function",
	Run:  runNoDirectOsExit,
}

func runNoDirectOsExit(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		if file.Name.Name != "main" {
			continue
		}

		// Сгенерированные файлы из кэша сборки не проверяем.
		filename := pass.Fset.Position(file.Pos()).Filename
		if strings.Contains(filename, "go-build") {
			continue
		}

		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Name.Name != "main" {
				continue
			}
			inspectMainFunc(pass, funcDecl)
		}
	}

	return nil, nil //nolint:nilnil
}

func inspectMainFunc(pass *analysis.Pass, funcDecl *ast.FuncDecl) {
	ast.Inspect(funcDecl, func(n ast.Node) bool {
		callExpr, ok := n.(*ast.CallExpr)
		if !ok || !isOsExitCall(callExpr) {
			return true
		}
		pass.Reportf(callExpr.Pos(), "direct call os.Exit is not allowed in main function")
		return true
	})
}

func isOsExitCall(callExpr *ast.CallExpr) bool {
	selExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	ident, ok := selExpr.X.(*ast.Ident)
	return ok && ident.Name == "os" && selExpr.Sel.Name == "Exit"
}
