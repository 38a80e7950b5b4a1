package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EnrichSystemPrompt appends the structured pipeline findings to a base
// system prompt for the delegated LLM call. Cache hits pass the base
// prompt through untouched: the stored answer already covers the question.
func EnrichSystemPrompt(basePrompt string, pctx *Context) string {
	if pctx == nil || pctx.Metadata.CacheHit || pctx.Intent == nil {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n## Contexto detectado\n")

	fmt.Fprintf(&b, "- Intención: %s", pctx.Intent.Type)
	if pctx.Intent.Subtype != "" {
		fmt.Fprintf(&b, "/%s", pctx.Intent.Subtype)
	}
	fmt.Fprintf(&b, " (confianza %.2f)\n", pctx.Intent.Confidence)

	if len(pctx.Intent.Entities) > 0 {
		b.WriteString("- Entidades resueltas:\n")
		for _, e := range pctx.Intent.Entities {
			fmt.Fprintf(&b, "  - %s %q (confianza %.2f)", e.Type, e.Name, e.Confidence)
			if e.MatchedAlias != "" {
				fmt.Fprintf(&b, " [alias: %q]", e.MatchedAlias)
			}
			b.WriteString("\n")
		}
	}

	if pctx.Plan != nil && pctx.Plan.Tool != "" {
		fmt.Fprintf(&b, "- Herramienta sugerida: %s\n", pctx.Plan.Tool)
		if params, err := json.Marshal(pctx.Plan.Params); err == nil {
			fmt.Fprintf(&b, "- Parámetros: %s\n", params)
		}
	}

	for _, w := range pctx.Metadata.Warnings {
		fmt.Fprintf(&b, "- Advertencia: %s\n", w)
	}

	return b.String()
}
