package generator

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/stifskere/proofroute/internal/models"
)

// methodConstants maps route methods onto net/http method constant names.
var methodConstants = map[string]string{
	"GET":     "MethodGet",
	"PUT":     "MethodPut",
	"POST":    "MethodPost",
	"DELETE":  "MethodDelete",
	"PATCH":   "MethodPatch",
	"OPTIONS": "MethodOptions",
	"TRACE":   "MethodTrace",
}

// generateRoute emits the dispatch wrapper for one route: ordered parameter
// extraction with short circuiting failure arms, the handler invocation, and
// the result mapping for the declared shape.
func (g *Generator) generateRoute(route *models.RouteMetadata, owners map[string]string, imports *importManager) (string, error) {
	proofQual := imports.add(proofImportPath)

	var code strings.Builder
	code.WriteString(fmt.Sprintf("// %s dispatches %s %s to %s.\n",
		route.WrapperName(), route.Method, route.Path, route.HandlerName))
	code.WriteString(fmt.Sprintf("func %s(ctx %s.RequestContext) error {\n", route.WrapperName(), proofQual))

	locals := assignLocals(route.Parameters)
	callArgs := make([]string, 0, len(route.Parameters))

	for i := range route.Parameters {
		param := &route.Parameters[i]
		switch param.Source {
		case models.ParameterSourceContext:
			callArgs = append(callArgs, "ctx")

		case models.ParameterSourcePath, models.ParameterSourceQuery:
			accessor := "Param"
			if param.Source == models.ParameterSourceQuery {
				accessor = "QueryParam"
			}
			code.WriteString(fmt.Sprintf("\t%s, err := %s(ctx.%s(%q))\n",
				locals[i], parserExpression(param, imports), accessor, param.Name))
			block, err := g.failureBlock(param, route, owners, imports, proofQual)
			if err != nil {
				return "", err
			}
			code.WriteString(block)
			callArgs = append(callArgs, locals[i])

		case models.ParameterSourceBody:
			code.WriteString(fmt.Sprintf("\t%s, err := %s.ExtractBody[%s](ctx)\n",
				locals[i], proofQual, bodyTypeExpression(param, imports)))
			block, err := g.failureBlock(param, route, owners, imports, proofQual)
			if err != nil {
				return "", err
			}
			code.WriteString(block)
			arg := locals[i]
			if strings.HasPrefix(param.Type, "*") {
				arg = "&" + arg
			}
			callArgs = append(callArgs, arg)

		default:
			return "", models.NewValidationError(route.FileName, route.Line,
				"parameter %s of %s was never classified", param.Name, route.HandlerName)
		}
	}

	invocation := fmt.Sprintf("%s(%s)", route.HandlerName, strings.Join(callArgs, ", "))
	switch route.Result.Shape {
	case models.ResultShapeResponse:
		code.WriteString(fmt.Sprintf("\tres := %s\n", invocation))
		code.WriteString("\treturn res.Write(ctx)\n")
	case models.ResultShapeResponseAndError:
		code.WriteString(fmt.Sprintf("\tres, herr := %s\n", invocation))
		code.WriteString("\tif herr != nil {\n")
		code.WriteString(fmt.Sprintf("\t\treturn %s.ErrorResponse(herr).Write(ctx)\n", proofQual))
		code.WriteString("\t}\n")
		code.WriteString("\treturn res.Write(ctx)\n")
	case models.ResultShapeResponseAndSetError:
		code.WriteString(fmt.Sprintf("\tres, herr := %s\n", invocation))
		code.WriteString("\tif herr != nil {\n")
		code.WriteString(fmt.Sprintf("\t\treturn Render%s(herr).Write(ctx)\n", route.Result.ErrorSet))
		code.WriteString("\t}\n")
		code.WriteString("\treturn res.Write(ctx)\n")
	}
	code.WriteString("}\n")
	return code.String(), nil
}

// failureBlock emits the arm taken when one parameter fails extraction. An
// override responds with its own rendering, routed through the owning set's
// renderer when the expression constructs a declared variant. Without an
// override the extraction error maps through its runtime response.
func (g *Generator) failureBlock(param *models.Parameter, route *models.RouteMetadata, owners map[string]string, imports *importManager, proofQual string) (string, error) {
	response := fmt.Sprintf("%s.FailedParam(%q, err).Response()", proofQual, param.Name)
	if param.OverrideSet {
		for qualifier, path := range param.OverrideImports {
			if err := imports.addForced(qualifier, path); err != nil {
				return "", models.NewValidationError(route.FileName, route.Line,
					"override for parameter %s of %s: %v", param.Name, route.HandlerName, err)
			}
		}
		if variant := overrideVariant(param.Override, owners); variant != "" {
			response = fmt.Sprintf("Render%s(%s)", owners[variant], param.Override)
		} else {
			response = fmt.Sprintf("%s.ErrorResponse(%s)", proofQual, param.Override)
		}
	}
	return fmt.Sprintf("\tif err != nil {\n\t\treturn %s.Write(ctx)\n\t}\n", response), nil
}

// generateRegistration emits the init function registering every route of
// the package.
func (g *Generator) generateRegistration(metadata *models.PackageMetadata, imports *importManager) (string, error) {
	proofQual := imports.add(proofImportPath)
	httpQual := imports.add("net/http")

	data := registrationData{Proof: proofQual, PackageName: metadata.PackageName}
	for i := range metadata.Routes {
		route := &metadata.Routes[i]
		data.Routes = append(data.Routes, registrationRoute{
			MethodConstant: httpQual + "." + methodConstants[route.Method],
			Path:           route.Path,
			HandlerName:    route.HandlerName,
			ErrorSet:       route.Result.ErrorSet,
			ParameterTypes: parameterTypesLiteral(route),
			Wrapper:        route.WrapperName(),
		})
	}
	return executeTemplate("route-registration", registrationTemplate, data)
}

type registrationRoute struct {
	MethodConstant string
	Path           string
	HandlerName    string
	ErrorSet       string
	ParameterTypes string
	Wrapper        string
}

type registrationData struct {
	Proof       string
	PackageName string
	Routes      []registrationRoute
}

// parameterTypesLiteral renders the path parameter type map of a route, or
// "" when the path declares none.
func parameterTypesLiteral(route *models.RouteMetadata) string {
	types := make(map[string]string)
	for _, param := range route.Parameters {
		if param.Source == models.ParameterSourcePath {
			types[param.Name] = param.Type
		}
	}
	if len(types) == 0 {
		return ""
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]string, len(names))
	for i, name := range names {
		entries[i] = fmt.Sprintf("%q: %q", name, types[name])
	}
	return "map[string]string{" + strings.Join(entries, ", ") + "}"
}

// assignLocals picks collision free local names for the wrapper body. The
// dispatch skeleton itself takes ctx, err, res and herr.
func assignLocals(params []models.Parameter) []string {
	taken := map[string]bool{"ctx": true, "err": true, "res": true, "herr": true}
	locals := make([]string, len(params))
	for i, param := range params {
		if param.Source == models.ParameterSourceContext {
			locals[i] = "ctx"
			continue
		}
		name := param.Name
		for taken[name] {
			name += "Value"
		}
		taken[name] = true
		locals[i] = name
	}
	return locals
}

// parserExpression resolves the call target for a path or query parser.
func parserExpression(param *models.Parameter, imports *importManager) string {
	if param.ParserImport == "" {
		return param.ParserFunc
	}
	return imports.add(param.ParserImport) + "." + param.ParserFunc
}

// bodyTypeExpression names the bound type inside ExtractBody. Pointer
// handlers bind a value and take its address at the call site, and package
// qualified types are requalified with the name the generated file imports
// them under.
func bodyTypeExpression(param *models.Parameter, imports *importManager) string {
	typeName := strings.TrimPrefix(param.Type, "*")
	if param.TypeImport == "" {
		return typeName
	}
	dot := strings.Index(typeName, ".")
	return imports.add(param.TypeImport) + typeName[dot:]
}

// overrideVariant returns the variant name an override expression
// constructs, or "" when the expression is not a literal of a declared
// variant.
func overrideVariant(expr string, owners map[string]string) string {
	name := strings.TrimPrefix(strings.TrimSpace(expr), "&")
	brace := strings.IndexByte(name, '{')
	if brace <= 0 {
		return ""
	}
	name = strings.TrimSpace(name[:brace])
	if !token.IsIdentifier(name) {
		return ""
	}
	if _, declared := owners[name]; !declared {
		return ""
	}
	return name
}

// variantOwners maps every declared variant onto the error set that owns
// it. Scanning guarantees a variant belongs to exactly one set.
func variantOwners(metadata *models.PackageMetadata) map[string]string {
	owners := make(map[string]string)
	for _, set := range metadata.ErrorSets {
		for _, variant := range set.Variants {
			owners[variant.Name] = set.Name
		}
	}
	return owners
}
