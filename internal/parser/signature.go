package parser

import (
	"go/ast"
	"strings"

	"github.com/stifskere/proofroute/internal/models"
)

// extractParameters reads the handler's parameter list in signature order.
// Classification into path, query, body and context happens later, once
// every package's parsers are known. Package qualified types resolve their
// import path here, while the declaring file is at hand.
func (p *Parser) extractParameters(funcDecl *ast.FuncDecl, file *ast.File, fileName string) ([]models.Parameter, error) {
	if funcDecl.Type.Params == nil {
		return nil, nil
	}

	line := p.fileSet.Position(funcDecl.Pos()).Line
	var params []models.Parameter
	position := 0

	for _, field := range funcDecl.Type.Params.List {
		if len(field.Names) == 0 {
			return nil, models.NewValidationError(fileName, line,
				"parameters of handler %s must be named", funcDecl.Name.Name)
		}
		typeStr := typeString(field.Type)
		typeImport := ""
		if qualifier := typeQualifier(typeStr); qualifier != "" {
			typeImport = importedPath(file, qualifier)
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, models.NewValidationError(fileName, line,
					"parameters of handler %s must be named", funcDecl.Name.Name)
			}
			params = append(params, models.Parameter{
				Name:       name.Name,
				Type:       typeStr,
				Source:     models.ParameterSourceUnknown,
				Position:   position,
				TypeImport: typeImport,
			})
			position++
		}
	}
	return params, nil
}

// typeQualifier returns the package qualifier of a type string, e.g.
// "models" for "*models.NotePayload", or "" for unqualified types.
func typeQualifier(typeStr string) string {
	name := strings.TrimPrefix(typeStr, "*")
	dot := strings.Index(name, ".")
	if dot <= 0 || dot != strings.LastIndex(name, ".") {
		return ""
	}
	return name[:dot]
}

// importedPath resolves a package qualifier against a file's import specs.
// Explicit aliases match exactly; unaliased imports match on the assumed
// package name of their path.
func importedPath(file *ast.File, qualifier string) string {
	if file == nil {
		return ""
	}
	for _, spec := range file.Imports {
		path := strings.Trim(spec.Path.Value, `"`)
		if spec.Name != nil {
			if spec.Name.Name == qualifier {
				return path
			}
			continue
		}
		if assumedPackageName(path) == qualifier {
			return path
		}
	}
	return ""
}

// overrideImports collects the package qualifiers an override expression
// selects into, resolved against the declaring file's imports. Selectors
// whose base does not match an import are left out, they refer to values
// built inside the expression itself.
func overrideImports(expr ast.Expr, file *ast.File) map[string]string {
	var resolved map[string]string
	ast.Inspect(expr, func(node ast.Node) bool {
		sel, ok := node.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if path := importedPath(file, ident.Name); path != "" {
			if resolved == nil {
				resolved = make(map[string]string)
			}
			resolved[ident.Name] = path
		}
		return true
	})
	return resolved
}

// assumedPackageName guesses the package name of an import path the way
// goimports does: last element, skipping major version suffixes like /v4
// and dotted suffixes like yaml.v3.
func assumedPackageName(path string) string {
	base := path
	if slash := strings.LastIndex(base, "/"); slash != -1 {
		if isVersionElement(base[slash+1:]) {
			base = base[:slash]
			if slash = strings.LastIndex(base, "/"); slash != -1 {
				base = base[slash+1:]
			}
		} else {
			base = base[slash+1:]
		}
	}
	if dot := strings.Index(base, "."); dot > 0 {
		base = base[:dot]
	}
	return base
}

func isVersionElement(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// analyzeResultShape checks the handler's return signature against the three
// supported shapes. The error set form resolves against sets declared in the
// handler's own package.
func (p *Parser) analyzeResultShape(funcDecl *ast.FuncDecl, pkg *models.PackageMetadata, fileName string) (models.ResultShapeInfo, error) {
	line := p.fileSet.Position(funcDecl.Pos()).Line
	name := funcDecl.Name.Name
	results := flattenFieldTypes(funcDecl.Type.Results)

	switch len(results) {
	case 0:
		return models.ResultShapeInfo{}, models.NewValidationError(fileName, line,
			"handler %s must return *proof.Response", name)

	case 1:
		if !isResponseType(results[0]) {
			return models.ResultShapeInfo{}, models.NewValidationError(fileName, line,
				"handler %s must return *proof.Response, got %s", name, results[0])
		}
		return models.ResultShapeInfo{Shape: models.ResultShapeResponse}, nil

	case 2:
		if !isResponseType(results[0]) {
			return models.ResultShapeInfo{}, models.NewValidationError(fileName, line,
				"first result of handler %s must be *proof.Response, got %s", name, results[0])
		}
		if results[1] == "error" {
			return models.ResultShapeInfo{Shape: models.ResultShapeResponseAndError}, nil
		}
		if pkg.ErrorSet(results[1]) != nil {
			return models.ResultShapeInfo{
				Shape:    models.ResultShapeResponseAndSetError,
				ErrorSet: results[1],
			}, nil
		}
		return models.ResultShapeInfo{}, models.NewValidationError(fileName, line,
			"second result of handler %s must be error or a declared error set, got %s", name, results[1])

	default:
		return models.ResultShapeInfo{}, models.NewValidationError(fileName, line,
			"handler %s returns %d values, at most two are allowed", name, len(results))
	}
}

// analyzeErrorInterface checks the structure of a //proof::errors interface
// and returns its sealing marker method, if any. A non-empty problem string
// describes the first rule the interface breaks; it completes the sentence
// "error set <name> ...".
func analyzeErrorInterface(iface *ast.InterfaceType) (marker string, problem string) {
	embedsError := false

	if iface.Methods != nil {
		for _, field := range iface.Methods.List {
			if len(field.Names) == 0 {
				embedded := typeString(field.Type)
				if embedded == "error" {
					embedsError = true
					continue
				}
				return "", "may only embed error, found " + embedded
			}

			name := field.Names[0].Name
			if marker != "" {
				return "", "declares more than one method (" + marker + " and " + name + "), only a single sealing marker is allowed"
			}
			if ast.IsExported(name) {
				return "", "method " + name + " must be unexported to act as a sealing marker"
			}
			funcType, ok := field.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			if len(flattenFieldTypes(funcType.Params)) > 0 || len(flattenFieldTypes(funcType.Results)) > 0 {
				return "", "marker method " + name + " must take no arguments and return nothing"
			}
			marker = name
		}
	}

	if !embedsError {
		return "", "must embed the error interface"
	}
	return marker, ""
}

// isTransformerSignature reports whether fn can serve as a response
// transformer: func(*proof.ResponseBuilder, string) *proof.Response.
func isTransformerSignature(fn *ast.FuncDecl) bool {
	params := flattenFieldTypes(fn.Type.Params)
	results := flattenFieldTypes(fn.Type.Results)
	if len(params) != 2 || len(results) != 1 {
		return false
	}
	return isBuilderType(params[0]) && params[1] == "string" && isResponseType(results[0])
}

// isParserSignature reports whether fn is a valid parameter parser for
// typeName: func(string) (typeName, error).
func isParserSignature(fn *ast.FuncDecl, typeName string) bool {
	params := flattenFieldTypes(fn.Type.Params)
	results := flattenFieldTypes(fn.Type.Results)
	if len(params) != 1 || params[0] != "string" {
		return false
	}
	return len(results) == 2 && results[0] == typeName && results[1] == "error"
}

// hasErrorMethod reports whether any of the methods is Error() string.
func hasErrorMethod(methods []*ast.FuncDecl) bool {
	for _, method := range methods {
		if method.Name.Name != "Error" {
			continue
		}
		params := flattenFieldTypes(method.Type.Params)
		results := flattenFieldTypes(method.Type.Results)
		if len(params) == 0 && len(results) == 1 && results[0] == "string" {
			return true
		}
	}
	return false
}

// isResponseType matches *proof.Response, tolerating import aliases.
func isResponseType(typeStr string) bool {
	return strings.HasPrefix(typeStr, "*") && strings.HasSuffix(typeStr, ".Response")
}

// isBuilderType matches *proof.ResponseBuilder, tolerating import aliases.
func isBuilderType(typeStr string) bool {
	return strings.HasPrefix(typeStr, "*") && strings.HasSuffix(typeStr, ".ResponseBuilder")
}

// isContextType matches proof.RequestContext, tolerating import aliases.
func isContextType(typeStr string) bool {
	return strings.HasSuffix(typeStr, ".RequestContext")
}

// flattenFieldTypes expands a field list into one type string per declared
// name, so (a, b int) contributes two entries.
func flattenFieldTypes(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var types []string
	for _, field := range fields.List {
		typeStr := typeString(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			types = append(types, typeStr)
		}
	}
	return types
}

// receiverBaseName returns the receiver's type name with pointers and type
// parameters stripped, or "" when there is no receiver.
func receiverBaseName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	return baseTypeName(fn.Recv.List[0].Type)
}

func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return baseTypeName(t.X)
	case *ast.IndexExpr:
		return baseTypeName(t.X)
	case *ast.IndexListExpr:
		return baseTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

// typeString renders a type expression the way it is written in source.
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeString(t.Elt)
		}
		return "[" + typeString(t.Len) + "]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.StructType:
		return "struct"
	case *ast.FuncType:
		return "func"
	case *ast.ChanType:
		return "chan " + typeString(t.Value)
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.IndexExpr:
		return typeString(t.X) + "[" + typeString(t.Index) + "]"
	case *ast.BasicLit:
		return t.Value
	}
	return "unknown"
}
