// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"
)

// JSONOutput adds a --json flag to a parameter struct when embedded.
// Commands with a human-readable report call [JSONOutput.EmitJSON]
// first and fall through to their text output when it returns false:
//
//	if done, err := params.EmitJSON(os.Stdout, report); done {
//		return err
//	}
//	return writeReport(os.Stdout, report)
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"write the result as JSON"`
}

// EmitJSON writes result to w as indented JSON when --json was given
// and reports whether it did. A nil slice is written as [].
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	if value := reflect.ValueOf(result); value.Kind() == reflect.Slice && value.IsNil() {
		result = reflect.MakeSlice(value.Type(), 0, 0).Interface()
	}
	return true, WriteJSON(w, result)
}

// WriteJSON writes value as two-space indented JSON followed by a
// newline. HTML characters are not escaped, so URIs stay readable.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
