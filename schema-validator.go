/*
 * Directo XMLCore Client SDK for Go, (C) 2022 Directo OU.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package directo

import (
	"io/fs"
	"strings"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"github.com/pkg/errors"
)

// SchemaValidator checks XML against the vendor's published XSD schemas,
// read from a filesystem. Validation is optional and off the critical path;
// schemas are loaded per call, no caching.
type SchemaValidator struct {
	fsys fs.FS
}

// NewSchemaValidator returns a validator reading .xsd files from fsys.
func NewSchemaValidator(fsys fs.FS) *SchemaValidator {
	return &SchemaValidator{fsys: fsys}
}

// Validate checks xmlText against the named schema file. Nonconformance
// fails with *SchemaValidationError carrying one entry per violation; a
// missing or unreadable schema file fails with a wrapped filesystem error.
func (v *SchemaValidator) Validate(xmlText, schemaFile string, reqCtx map[string]string) error {
	schema, err := xsd.Load(v.fsys, schemaFile)
	if err != nil {
		return errors.Wrapf(err, "loading schema %s", schemaFile)
	}
	if err := schema.Validate(strings.NewReader(xmlText)); err != nil {
		verr := &SchemaValidationError{
			SchemaFile: schemaFile,
			Err:        err,
			Context:    reqCtx,
		}
		if violations, ok := xsderrors.AsValidations(err); ok {
			for _, violation := range violations {
				verr.Violations = append(verr.Violations, violation.Error())
			}
		}
		return verr
	}
	return nil
}
