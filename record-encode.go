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
	"fmt"

	"github.com/beevik/etree"
)

// BuildRequestXML serializes one record for an XMLCore write. The record is
// wrapped as <rootTag><recordTag>...</recordTag></rootTag>. When keyAttr
// names a field present in the record, that field is promoted to an XML
// attribute on the record element and omitted from the body fields.
//
// Unlike decoding, building involves no inference: a sequence renders as
// repeated sibling elements and a scalar as a single element, exactly as the
// caller's data says. Booleans render as 1/0, nil as an empty element.
func BuildRequestXML(rootTag, recordTag string, record *Record, keyAttr string) (string, error) {
	return BuildBatchRequestXML(rootTag, recordTag, []*Record{record}, keyAttr)
}

// BuildBatchRequestXML serializes several records under one root element,
// for batched writes.
func BuildBatchRequestXML(rootTag, recordTag string, records []*Record, keyAttr string) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	for _, record := range records {
		el := root.CreateElement(recordTag)
		skip := ""
		if keyAttr != "" {
			if key, ok := record.Get(keyAttr); ok {
				el.CreateAttr(keyAttr, scalarText(key))
				skip = keyAttr
			}
		}
		encodeRecord(el, record, skip)
	}
	return doc.WriteToString()
}

func encodeRecord(parent *etree.Element, record *Record, skip string) {
	for _, field := range record.Fields() {
		if skip != "" && field.Name == skip {
			continue
		}
		encodeField(parent, field.Name, field.Value)
	}
}

func encodeField(parent *etree.Element, name string, value interface{}) {
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			encodeField(parent, name, item)
		}
	case []string:
		for _, item := range v {
			encodeField(parent, name, item)
		}
	case []*Record:
		for _, item := range v {
			encodeField(parent, name, item)
		}
	case *Record:
		encodeRecord(parent.CreateElement(name), v, "")
	default:
		el := parent.CreateElement(name)
		if text := scalarText(v); text != "" {
			el.SetText(text)
		}
	}
}

// scalarText renders a scalar field value as element text. nil renders as
// the empty string, matching how the server represents unset fields.
func scalarText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
