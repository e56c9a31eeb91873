package generator

import (
	"fmt"
	"strings"

	"github.com/stifskere/proofroute/internal/models"
)

// serverFaultConstant is the arm for untagged variants and for the default
// arm that keeps the mapping total.
const serverFaultConstant = "StatusInternalServerError"

type rendererArm struct {
	TypeName string
	Render   string
}

type rendererData struct {
	SetName string
	Proof   string
	Arms    []rendererArm
	Default string
}

// generateErrorSet emits the Render function for one error set, followed by
// the marker method implementations that seal the interface.
func (g *Generator) generateErrorSet(set *models.ErrorSetMetadata, imports *importManager) (string, error) {
	proofQual := imports.add(proofImportPath)
	httpQual := imports.add("net/http")

	data := rendererData{
		SetName: set.Name,
		Proof:   proofQual,
		Default: renderExpression(set, httpQual+"."+serverFaultConstant, proofQual),
	}
	for _, variant := range set.Variants {
		status := httpQual + "." + strings.TrimPrefix(variant.StatusConstant, "http.")
		data.Arms = append(data.Arms, rendererArm{
			TypeName: variant.Name,
			Render:   renderExpression(set, status, proofQual),
		})
	}

	code, err := executeTemplate("error-renderer", rendererTemplate, data)
	if err != nil {
		return "", err
	}

	if set.MarkerMethod != "" {
		var markers strings.Builder
		markers.WriteString("\n")
		for _, variant := range set.Variants {
			markers.WriteString(fmt.Sprintf("func (%s) %s() {}\n", variant.Name, set.MarkerMethod))
		}
		code += markers.String()
	}
	return code, nil
}

// renderExpression builds one arm's return expression. A set with a
// transformer receives a builder preloaded with the variant's status and the
// display string, and its return value is written verbatim.
func renderExpression(set *models.ErrorSetMetadata, status, proofQual string) string {
	if set.HasTransformer() {
		return fmt.Sprintf("%s(%s.NewBuilder(%s), err.Error())", set.Transformer, proofQual, status)
	}
	return fmt.Sprintf("%s.NewBuilder(%s).BodyString(err.Error()).Build()", proofQual, status)
}
