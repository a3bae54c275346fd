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
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

const itemsSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" elementFormDefault="qualified">
  <xs:element name="artiklid">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="artikkel" maxOccurs="unbounded">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="nimetus" type="xs:string"/>
            </xs:sequence>
            <xs:attribute name="kood" type="xs:string" use="required"/>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func testSchemaFS() fstest.MapFS {
	return fstest.MapFS{
		"items_put.xsd": &fstest.MapFile{Data: []byte(itemsSchema)},
	}
}

func TestSchemaValidatorAccept(t *testing.T) {
	validator := NewSchemaValidator(testSchemaFS())
	xmlText := `<?xml version="1.0"?><artiklid><artikkel kood="I1"><nimetus>Widget</nimetus></artikkel></artiklid>`
	if err := validator.Validate(xmlText, "items_put.xsd", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSchemaValidatorReject(t *testing.T) {
	validator := NewSchemaValidator(testSchemaFS())
	// Wrong child element and missing required attribute.
	xmlText := `<?xml version="1.0"?><artiklid><artikkel><hind>4.50</hind></artikkel></artiklid>`
	err := validator.Validate(xmlText, "items_put.xsd", map[string]string{"operation": "Put"})
	verr, ok := err.(*SchemaValidationError)
	if !ok {
		t.Fatalf("expected *SchemaValidationError, got %T (%v)", err, err)
	}
	if verr.SchemaFile != "items_put.xsd" {
		t.Errorf("schema file not recorded")
	}
	if verr.Context["operation"] != "Put" {
		t.Errorf("context not carried")
	}
	if !strings.Contains(verr.Error(), "items_put.xsd") {
		t.Errorf("error text should name the schema: %v", verr)
	}
}

func TestSchemaValidatorMissingSchema(t *testing.T) {
	validator := NewSchemaValidator(testSchemaFS())
	err := validator.Validate(`<artiklid/>`, "nosuch.xsd", nil)
	if err == nil {
		t.Fatalf("expected error for missing schema file")
	}
	if _, ok := err.(*SchemaValidationError); ok {
		t.Errorf("missing schema is a filesystem failure, not a validation result")
	}
}

func TestClientValidatesPutSchema(t *testing.T) {
	cfg := testConfig()
	cfg.ValidateSchemas = true
	cfg.SchemaFS = testSchemaFS()
	transport := &fakeTransport{body: `<results/>`}
	client, err := NewWithTransport(cfg, transport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A record violating the schema never reaches the wire.
	bad := NewRecord().Set("kood", "I1").Set("hind", "4.50")
	_, err = client.Put(context.Background(), Items, bad)
	if _, ok := err.(*SchemaValidationError); !ok {
		t.Fatalf("expected *SchemaValidationError, got %T (%v)", err, err)
	}
	if transport.calls != 0 {
		t.Errorf("invalid XML was posted anyway")
	}

	// A conforming record goes through.
	good := NewRecord().Set("kood", "I1").Set("nimetus", "Widget")
	if _, err := client.Put(context.Background(), Items, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transport.calls != 1 {
		t.Errorf("expected 1 transport call, got %d", transport.calls)
	}
}
