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
	"testing"
)

func TestBuiltinResources(t *testing.T) {
	for name, res := range Resources() {
		if res.Name() != name {
			t.Errorf("resource registered under %q reports name %q", name, res.Name())
		}
		if len(res.FilterKeys()) == 0 {
			t.Errorf("resource %q has no filter keys", name)
		}
		shape := res.WriteShape()
		if shape.Root == "" || shape.Record == "" {
			t.Errorf("resource %q has incomplete write shape %+v", name, shape)
		}
	}
	if _, ok := Resources()["item"]; !ok {
		t.Errorf("item resource missing")
	}
}

func TestFilterKeysCopied(t *testing.T) {
	keys := Items.FilterKeys()
	keys[0] = "mutated"
	if Items.FilterKeys()[0] == "mutated" {
		t.Errorf("FilterKeys returned shared backing storage")
	}
}

// A caller-defined resource satisfies the same interface the client uses.
type customResource struct{}

func (customResource) Name() string             { return "warehouse" }
func (customResource) FilterKeys() []string     { return []string{"code"} }
func (customResource) WriteShape() WriteShape   { return WriteShape{Root: "laod", Record: "ladu", Key: "kood"} }
func (customResource) SchemaFiles() SchemaFiles { return SchemaFiles{} }

func TestCustomResource(t *testing.T) {
	transport := &fakeTransport{body: `<transport><ladu kood="W1"/></transport>`}
	client := newTestClient(t, transport)

	records, err := client.List(context.Background(), customResource{}, map[string]interface{}{"code": "W1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := transport.params.Get(paramWhat); got != "warehouse" {
		t.Errorf("expected what=warehouse, got %q", got)
	}
}
