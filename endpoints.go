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

// Resource describes one XMLCore resource type: its wire name, the filter
// keys its list endpoint accepts, the XML element names writes must use, and
// the optional XSD schema files. The client depends only on this interface;
// callers may pass the built-in definitions below or their own
// implementations for resources this package does not know about.
//
// By convention the first allowed filter key is the resource's primary key;
// Get relies on that.
type Resource interface {
	// Name is the value of the "what" form parameter.
	Name() string
	// FilterKeys lists the filter keys the list endpoint accepts, primary
	// key first.
	FilterKeys() []string
	// WriteShape names the XML elements a put request is built from.
	WriteShape() WriteShape
	// SchemaFiles names the XSD files used when schema validation is
	// enabled. Either name may be empty to skip validation for that
	// operation.
	SchemaFiles() SchemaFiles
}

// WriteShape holds the XML element names for writes: the root wrapper, the
// per-record element, and the optional key field promoted to an attribute on
// the record element.
type WriteShape struct {
	Root   string
	Record string
	Key    string
}

// SchemaFiles names the XSD schemas per operation. List validates response
// bodies of reads, Put validates outgoing request XML.
type SchemaFiles struct {
	List string
	Put  string
}

// resourceDef is the one implementation of Resource this package ships;
// a plain immutable value per resource.
type resourceDef struct {
	name    string
	filters []string
	write   WriteShape
	schemas SchemaFiles
}

func (r resourceDef) Name() string             { return r.name }
func (r resourceDef) FilterKeys() []string     { return append([]string(nil), r.filters...) }
func (r resourceDef) WriteShape() WriteShape   { return r.write }
func (r resourceDef) SchemaFiles() SchemaFiles { return r.schemas }

// Built-in definitions for the stock Directo resources. Element and key
// names are Estonian on the wire; filter keys follow the XMLCore docs.
var (
	// Items is the article/product registry.
	Items Resource = resourceDef{
		name:    "item",
		filters: []string{"code", "searchname", "class", "changed", "limit", "offset"},
		write:   WriteShape{Root: "artiklid", Record: "artikkel", Key: "kood"},
		schemas: SchemaFiles{List: "items.xsd", Put: "items_put.xsd"},
	}

	// Customers is the customer registry.
	Customers Resource = resourceDef{
		name:    "customer",
		filters: []string{"code", "searchname", "email", "changed", "limit", "offset"},
		write:   WriteShape{Root: "kliendid", Record: "klient", Key: "kood"},
		schemas: SchemaFiles{List: "customers.xsd", Put: "customers_put.xsd"},
	}

	// Invoices is the sales invoice register.
	Invoices Resource = resourceDef{
		name:    "invoice",
		filters: []string{"number", "customercode", "datestart", "dateend", "changed", "limit", "offset"},
		write:   WriteShape{Root: "arved", Record: "arve", Key: "number"},
		schemas: SchemaFiles{List: "invoices.xsd", Put: "invoices_put.xsd"},
	}

	// Deliveries is the delivery register.
	Deliveries Resource = resourceDef{
		name:    "delivery",
		filters: []string{"number", "datestart", "dateend", "changed", "limit", "offset"},
		write:   WriteShape{Root: "lahetused", Record: "lahetus", Key: "number"},
		schemas: SchemaFiles{List: "deliveries.xsd", Put: "deliveries_put.xsd"},
	}

	// Events is the CRM event register.
	Events Resource = resourceDef{
		name:    "event",
		filters: []string{"number", "type", "datestart", "dateend", "changed", "limit", "offset"},
		write:   WriteShape{Root: "syndmused", Record: "syndmus", Key: "number"},
		schemas: SchemaFiles{},
	}

	// PriceLists is the price list register. Read-only over XMLCore.
	PriceLists Resource = resourceDef{
		name:    "pricelist",
		filters: []string{"code", "changed", "limit", "offset"},
		write:   WriteShape{Root: "hinnakirjad", Record: "hinnakiri", Key: "kood"},
		schemas: SchemaFiles{List: "pricelists.xsd"},
	}
)

// Resources lists the built-in resource definitions, keyed by wire name.
func Resources() map[string]Resource {
	all := []Resource{Items, Customers, Invoices, Deliveries, Events, PriceLists}
	out := make(map[string]Resource, len(all))
	for _, r := range all {
		out[r.Name()] = r
	}
	return out
}
