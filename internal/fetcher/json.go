package fetcher

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeJSONObject decodes a single JSON object from a reader. Anything
// after the object other than whitespace is an error.
func DecodeJSONObject[T any](r io.Reader) (*T, error) {
	dec := json.NewDecoder(r)

	var obj T
	if err := dec.Decode(&obj); err != nil {
		return nil, eris.Wrap(err, "json: decode object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, eris.New("json: unexpected data after object")
	}
	return &obj, nil
}
