package share

import (
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// payloadSchema is the wire contract for import payloads. label must be a
// non-empty string and documents must be a list; entries are open structs so
// payloads from newer versions with extra fields still import.
const payloadSchema = `
#Document: {
	title?: string
	url?:   string
	...
}

#Payload: {
	label:     string & !=""
	documents: [...#Document]
	...
}
`

// validatePayload checks raw against the payload schema.
// Returns nil when the payload is well-formed. Every failure path returns a
// *FormatError whose message names the offending field where CUE can tell.
func validatePayload(raw []byte) *FormatError {
	cctx := cuecontext.New()

	schema := cctx.CompileString(payloadSchema)
	if err := schema.Err(); err != nil {
		return newFormatError("payload schema failed to compile: %v", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Payload"))
	if err := def.Err(); err != nil {
		return newFormatError("payload schema has no #Payload definition: %v", err)
	}

	expr, err := cuejson.Extract("payload", raw)
	if err != nil {
		return newFormatError("payload is not valid JSON: %v", err)
	}
	data := cctx.BuildExpr(expr)
	if err := data.Err(); err != nil {
		return newFormatError("payload is not valid JSON: %v", err)
	}

	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		msgs := make([]string, 0)
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return newFormatError("payload does not match schema: %s", strings.Join(msgs, "; "))
	}

	return nil
}
