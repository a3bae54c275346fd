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
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Decoder converts heterogeneous XMLCore response documents into generic
// records. The XMLCore API is not schema-consistent across endpoints: some
// return a flat list of same-named records directly under the root, others
// wrap records in a named container, others return exactly one record with
// no container, and some use a <transport> root with heterogeneous direct
// children. The decoder infers the envelope shape instead of requiring
// per-endpoint schemas; see recordElements for the priority chain.
//
// The zero value trims whitespace and converts empty values to nil, which
// matches the server's habit of emitting empty elements for unset fields.
// A Decoder is stateless and safe for concurrent use.
type Decoder struct {
	// KeepWhitespace disables trimming of leading/trailing whitespace on
	// attribute and text values.
	KeepWhitespace bool
	// KeepEmptyValues keeps empty strings instead of replacing them with
	// nil.
	KeepEmptyValues bool
}

// Decode parses one complete XML document and returns its records. Empty or
// whitespace-only input yields no records and no error. Non-empty input that
// is not well-formed XML fails with *MalformedXMLError carrying the parser
// diagnostic, the raw text and reqCtx.
func (d *Decoder) Decode(xmlText string, reqCtx map[string]string) ([]*Record, error) {
	if strings.TrimSpace(xmlText) == "" {
		return nil, nil
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, &MalformedXMLError{Err: err, RawBody: xmlText, Context: reqCtx}
	}
	root := doc.Root()
	if root == nil {
		// Comments or processing instructions only.
		return nil, nil
	}
	elements := recordElements(root)
	records := make([]*Record, 0, len(elements))
	for _, el := range elements {
		records = append(records, d.elementToRecord(el))
	}
	return records, nil
}

// recordElements resolves the envelope shape: which elements of the document
// are the records. Under a <transport> root the shape is ambiguous between
// "each direct child IS a record" and "the single direct child is a container
// whose children are the records"; the priority chain below is tuned to the
// response shapes the API has been observed to produce. Any other root is
// treated as a flat list: every direct child is a record and the root itself
// is discarded.
func recordElements(root *etree.Element) []*etree.Element {
	children := root.ChildElements()
	if root.Tag != transportRootTag {
		return children
	}
	if len(children) == 0 {
		return nil
	}
	if sameTag(children) {
		if len(children) > 1 {
			// Repeated top-level record tags.
			return children
		}
		// A single child either holds the records or is the one record.
		grandchildren := children[0].ChildElements()
		if len(grandchildren) >= 2 && sameTag(grandchildren) {
			return grandchildren
		}
		return children
	}
	// Heterogeneous direct children: the first child is taken to be the
	// container, remaining siblings are ignored.
	return children[0].ChildElements()
}

func sameTag(elements []*etree.Element) bool {
	for _, el := range elements[1:] {
		if el.Tag != elements[0].Tag {
			return false
		}
	}
	return true
}

// elementToRecord converts one element into a record, recursively. Attributes
// become "@"-prefixed fields; child elements are grouped by tag preserving
// first-seen order, with repeated tags always stored as sequences.
func (d *Decoder) elementToRecord(el *etree.Element) *Record {
	rec := NewRecord()
	for _, attr := range el.Attr {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			// Namespace declarations are not data.
			continue
		}
		name := attributeFieldPrefix + attr.Key
		if attr.Space != "" {
			name = attributeFieldPrefix + attr.Space + ":" + attr.Key
		}
		rec.Set(name, d.normalize(attr.Value))
	}

	var order []string
	groups := make(map[string][]*etree.Element)
	for _, child := range el.ChildElements() {
		if _, seen := groups[child.Tag]; !seen {
			order = append(order, child.Tag)
		}
		groups[child.Tag] = append(groups[child.Tag], child)
	}

	for _, tag := range order {
		group := groups[tag]
		if len(group) == 1 && !isPluralOf(el.Tag, tag) {
			rec.Set(tag, d.childValue(group[0]))
			continue
		}
		// Repeated tags, or a lone child under its own plural container
		// (<rows><row>), are always sequences so callers never have to
		// guess cardinality.
		seq := make([]interface{}, 0, len(group))
		for _, child := range group {
			seq = append(seq, d.childValue(child))
		}
		rec.Set(tag, seq)
	}
	return rec
}

// childValue converts a child element: a nested record when it has child
// elements or attributes of its own, otherwise its normalized text content.
func (d *Decoder) childValue(el *etree.Element) interface{} {
	if len(el.ChildElements()) > 0 || len(el.Attr) > 0 {
		return d.elementToRecord(el)
	}
	return d.normalize(el.Text())
}

func (d *Decoder) normalize(s string) interface{} {
	if !d.KeepWhitespace {
		s = strings.TrimSpace(s)
	}
	if !d.KeepEmptyValues && s == "" {
		return nil
	}
	return s
}

// isPluralOf reports whether parent reads as the English plural of child:
// parent ends in "s" but not "ss", and stripping either the trailing "s" or
// a trailing "es" yields child. Covers rows/row, prices/price and
// addresses/address. The API mixes English and Estonian tag names, so the
// rule has known false negatives; existing callers depend on its exact
// behavior, including the misses.
func isPluralOf(parent, child string) bool {
	if !strings.HasSuffix(parent, "s") || strings.HasSuffix(parent, "ss") {
		return false
	}
	if parent[:len(parent)-1] == child {
		return true
	}
	return strings.HasSuffix(parent, "es") && parent[:len(parent)-2] == child
}
