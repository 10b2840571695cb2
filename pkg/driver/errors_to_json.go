package driver

import (
	"encoding/json"

	"src.simple-lang.dev/pkg/parse"
)

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range parse.UnpackErrors(err) {
		converted = append(converted, errorInJSON{
			e.Context.Name, e.Type, e.Context.Line(), e.Context.From, e.Context.To, e.Message})
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
