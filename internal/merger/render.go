package merger

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/dst"

	"github.com/chriserin/gherkinstub/internal/generator"
)

// TestPrefix marks a method as a test case for testify's suite runner.
const TestPrefix = "Test_"

const suitePath = "github.com/stretchr/testify/suite"

// Identifier is the Go name a generated method is rendered under.
func Identifier(m generator.GeneratedMethod) string {
	if m.TestMarked {
		return TestPrefix + m.Name
	}
	return m.Name
}

func runnerName(className string) string {
	return "Test" + className
}

// packageClause is the last segment of a dotted package name.
func packageClause(packageName string) string {
	segments := strings.Split(packageName, ".")
	return segments[len(segments)-1]
}

func docDecorations(doc string) dst.Decorations {
	doc = strings.TrimRight(doc, "\n")
	if doc == "" {
		return nil
	}
	var decs dst.Decorations
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			decs = append(decs, "//")
			continue
		}
		decs = append(decs, "// "+line)
	}
	return decs
}

func importDecl() *dst.GenDecl {
	return &dst.GenDecl{
		Tok:    token.IMPORT,
		Lparen: true,
		Specs: []dst.Spec{
			importSpec("testing", dst.NewLine),
			importSpec(suitePath, dst.EmptyLine),
		},
		Rparen: true,
		Decs: dst.GenDeclDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.EmptyLine},
		},
	}
}

func importSpec(path string, before dst.SpaceType) *dst.ImportSpec {
	return &dst.ImportSpec{
		Path: &dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(path)},
		Decs: dst.ImportSpecDecorations{
			NodeDecs: dst.NodeDecs{Before: before, After: dst.NewLine},
		},
	}
}

// suiteTypeDecl renders
//
//	type Name struct {
//		suite.Suite
//	}
func suiteTypeDecl(class *generator.GeneratedClass) *dst.GenDecl {
	embedded := &dst.Field{
		Type: &dst.SelectorExpr{X: dst.NewIdent("suite"), Sel: dst.NewIdent("Suite")},
		Decs: dst.FieldDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.NewLine, After: dst.NewLine},
		},
	}
	return &dst.GenDecl{
		Tok: token.TYPE,
		Specs: []dst.Spec{
			&dst.TypeSpec{
				Name: dst.NewIdent(class.Name),
				Type: &dst.StructType{
					Fields: &dst.FieldList{
						Opening: true,
						List:    []*dst.Field{embedded},
						Closing: true,
					},
				},
			},
		},
		Decs: dst.GenDeclDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.EmptyLine, Start: docDecorations(class.Doc)},
		},
	}
}

// runnerDecl renders
//
//	func TestName(t *testing.T) {
//		suite.Run(t, new(Name))
//	}
func runnerDecl(className string) *dst.FuncDecl {
	run := &dst.ExprStmt{
		X: &dst.CallExpr{
			Fun: &dst.SelectorExpr{X: dst.NewIdent("suite"), Sel: dst.NewIdent("Run")},
			Args: []dst.Expr{
				dst.NewIdent("t"),
				&dst.CallExpr{Fun: dst.NewIdent("new"), Args: []dst.Expr{dst.NewIdent(className)}},
			},
		},
		Decs: dst.ExprStmtDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.NewLine, After: dst.NewLine},
		},
	}
	return &dst.FuncDecl{
		Name: dst.NewIdent(runnerName(className)),
		Type: &dst.FuncType{
			Func: true,
			Params: &dst.FieldList{
				Opening: true,
				List: []*dst.Field{{
					Names: []*dst.Ident{dst.NewIdent("t")},
					Type: &dst.StarExpr{
						X: &dst.SelectorExpr{X: dst.NewIdent("testing"), Sel: dst.NewIdent("T")},
					},
				}},
				Closing: true,
			},
		},
		Body: &dst.BlockStmt{List: []dst.Stmt{run}},
		Decs: dst.FuncDeclDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.EmptyLine},
		},
	}
}

// methodDecl renders an empty method on typeName documented with m.Doc.
func methodDecl(typeName, recv string, pointer bool, m generator.GeneratedMethod) *dst.FuncDecl {
	var recvType dst.Expr = dst.NewIdent(typeName)
	if pointer {
		recvType = &dst.StarExpr{X: recvType}
	}
	return &dst.FuncDecl{
		Recv: &dst.FieldList{
			Opening: true,
			List: []*dst.Field{{
				Names: []*dst.Ident{dst.NewIdent(recv)},
				Type:  recvType,
			}},
			Closing: true,
		},
		Name: dst.NewIdent(Identifier(m)),
		Type: &dst.FuncType{
			Func:   true,
			Params: &dst.FieldList{Opening: true, Closing: true},
		},
		Body: &dst.BlockStmt{},
		Decs: dst.FuncDeclDecorations{
			NodeDecs: dst.NodeDecs{Before: dst.EmptyLine, Start: docDecorations(m.Doc)},
		},
	}
}
