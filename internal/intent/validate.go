package intent

import (
	"fmt"

	"github.com/obraflow/obraflow/internal/entities"
)

// lowConfidenceThreshold marks intents worth a soft warning.
const lowConfidenceThreshold = 0.5

// subtypeRequirements lists the entity type each intent must have resolved
// to be executable, with the user-facing missing-context message.
var subtypeRequirements = []struct {
	intentType string
	entityType entities.Type
	message    string
}{
	{TypeContactMovements, entities.TypeContact, "no se detectó ningún contacto en la consulta"},
	{TypeProjectStatus, entities.TypeProject, "no se detectó ningún proyecto en la consulta"},
	{TypeWalletBalance, entities.TypeWallet, "no se detectó ninguna billetera en la consulta"},
}

// Validate enforces subtype-specific preconditions and reports soft
// warnings. An unknown intent is reported as missing context, never as a
// hard system fault; the caller decides whether that terminates the
// pipeline.
func Validate(in Intent) Validation {
	v := Validation{Valid: true}

	if in.IsUnknown() {
		v.Valid = false
		v.MissingContext = append(v.MissingContext,
			"no pude interpretar qué información necesitás; probá reformular la pregunta")
		return v
	}

	for _, req := range subtypeRequirements {
		if in.Type != req.intentType {
			continue
		}
		if !hasAllTypes(in.Entities, []entities.Type{req.entityType}) {
			v.Valid = false
			v.MissingContext = append(v.MissingContext, req.message)
		}
	}

	if in.Confidence < lowConfidenceThreshold {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("confianza baja en la clasificación (%.2f)", in.Confidence))
	}

	return v
}
