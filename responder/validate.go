package responder

import (
	"go.uber.org/zap"

	"github.com/lambda-feedback/mirror/responder/schema"
)

// validateDocument checks body against the schema of its document type.
// Violations are logged, the document is served regardless.
func (r *EchoResponder) validateDocument(
	log *zap.Logger,
	schemaType schema.SchemaType,
	body []byte,
) {
	log = log.With(zap.Stringer("schema", schemaType))

	result, err := r.schemas.Validate(schemaType, body)
	if err != nil {
		log.Warn("failed to validate document", zap.Error(err))
		return
	}

	if result.Valid() {
		return
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}

	log.Warn("document does not match schema", zap.Strings("violations", violations))
}
