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
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// The XMLCore API reports failures inside HTTP 200 bodies, in half a dozen
// shapes accumulated over the years: dedicated error elements (English and
// Estonian names), error attributes on the root, <status code=...> and
// <result type=...> markers. DetectAPIError classifies a response body by
// running the shapes as layered heuristics.
//
// Detection is two-phase for performance: a cheap case-insensitive substring
// pre-filter gates the expensive parse-and-scan phase, so the structural
// scan only runs on the small fraction of responses that contain an error
// indicator at all.

// Element names that mark an error payload. "viga" and "veateade" are
// Estonian for error and error message.
var errorElementNames = []string{"error", "errors", "err", "viga", "veateade"}

// Attribute names that mark an error on the element carrying them.
var errorAttributeNames = []string{"error", "errormessage", "error_message", "viga"}

// Attribute names searched, in order, for the human-readable message.
var messageAttributeNames = []string{"desc", "description", "message", "msg", "teade", "kirjeldus"}

// Attributes consulted when an error flag attribute like error="1" carries
// no message of its own.
var flagMessageAttributeNames = []string{"message", "errormessage", "error_message", "msg", "teade"}

var statusErrorCodes = map[string]bool{
	"error": true, "err": true, "fail": true, "failed": true, "viga": true,
}

var resultErrorTypes = map[string]bool{
	"5": true, "error": true, "err": true,
}

// Compiled XPath expressions matching error elements anywhere in the
// document, case-insensitively, one per error element name.
var errorElementQueries = compileLowerNameQueries(errorElementNames)

var (
	statusElementQuery = xpath.MustCompile("//status|//Status|//STATUS")
	resultElementQuery = xpath.MustCompile("//result|//Result|//RESULT")
)

func compileLowerNameQueries(names []string) []*xpath.Expr {
	const upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const lower = "abcdefghijklmnopqrstuvwxyz"
	queries := make([]*xpath.Expr, 0, len(names))
	for _, name := range names {
		queries = append(queries, xpath.MustCompile(
			fmt.Sprintf("//*[translate(name(), '%s', '%s') = '%s']", upper, lower, name)))
	}
	return queries
}

// DetectAPIError scans a response body for a vendor-level error and returns
// *APIError when one is found, nil otherwise. Empty input never matches.
// Bodies that trip the pre-filter but fail to parse are not reported either;
// malformed XML is the decoder's to diagnose.
func DetectAPIError(body string, reqCtx map[string]string) error {
	if !hasErrorIndicators(body) {
		return nil
	}
	doc, err := xmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}
	root := firstElement(doc)
	if root == nil {
		return nil
	}

	raise := func(messages []string) error {
		return &APIError{Messages: messages, RawBody: body, Context: reqCtx}
	}

	// Root named after an error element decides the outcome by itself.
	if messages, ok := rootElementMessages(root); ok {
		return raise(messages)
	}
	// So does an error attribute on the root.
	if messages := rootAttributeMessages(root); len(messages) > 0 {
		return raise(messages)
	}

	// Accumulating strategies: error elements anywhere, then status codes,
	// then result types. Their union, deduplicated in document order, is
	// the final message list.
	var messages []string
	messages = append(messages, scanErrorElements(doc)...)
	messages = append(messages, scanStatusElements(doc)...)
	messages = append(messages, scanResultElements(doc)...)
	messages = dedupNonEmpty(messages)
	if len(messages) == 0 {
		// Pre-filter false positive, e.g. the word "error" inside data.
		return nil
	}
	return raise(messages)
}

// hasErrorIndicators is the phase-1 pre-filter: pure substring containment
// over the lowercased body, no parsing. "<error" is a tag-open heuristic,
// not real XML matching, so it can false-positive; phase 2 sorts that out.
func hasErrorIndicators(body string) bool {
	lower := strings.ToLower(body)
	for _, name := range errorElementNames {
		if strings.Contains(lower, "<"+name) {
			return true
		}
	}
	for _, name := range errorAttributeNames {
		if strings.Contains(lower, name+"=") {
			return true
		}
	}
	return strings.Contains(lower, "<status") || strings.Contains(lower, "<result")
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// rootElementMessages handles a root element that is itself named after an
// error element: <error>...</error> or an <errors> list. The returned
// messages may be empty even when ok is true; the response is still an
// error, just one without any usable text.
func rootElementMessages(root *xmlquery.Node) (messages []string, ok bool) {
	if !isErrorElementName(root.Data) {
		return nil, false
	}
	if strings.EqualFold(root.Data, "errors") {
		for child := root.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			if text := strings.TrimSpace(child.InnerText()); text != "" {
				messages = append(messages, text)
			}
		}
		return dedupNonEmpty(messages), true
	}
	if text := strings.TrimSpace(root.InnerText()); text != "" {
		messages = append(messages, text)
	}
	return messages, true
}

// rootAttributeMessages handles error flags carried as root attributes:
// error="1" with the message in a sibling attribute, or error="some text"
// with the message inline.
func rootAttributeMessages(root *xmlquery.Node) []string {
	var messages []string
	for _, name := range errorAttributeNames {
		value, present := elementAttr(root, name)
		if !present {
			continue
		}
		switch value {
		case "1", "true", "yes":
			found := false
			for _, msgAttr := range flagMessageAttributeNames {
				if msg, ok := elementAttr(root, msgAttr); ok {
					if trimmed := strings.TrimSpace(msg); trimmed != "" {
						messages = append(messages, trimmed)
						found = true
					}
				}
			}
			if !found {
				if text := strings.TrimSpace(root.InnerText()); text != "" {
					messages = append(messages, text)
				} else {
					messages = append(messages, "An error occurred")
				}
			}
		default:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				messages = append(messages, trimmed)
			}
		}
	}
	return dedupNonEmpty(messages)
}

// scanErrorElements finds error-named elements anywhere in the document. An
// <errors> list contributes one message per child element; anything else
// contributes its own message.
func scanErrorElements(doc *xmlquery.Node) []string {
	var messages []string
	for _, query := range errorElementQueries {
		for _, node := range xmlquery.QuerySelectorAll(doc, query) {
			if strings.EqualFold(node.Data, "errors") {
				for child := node.FirstChild; child != nil; child = child.NextSibling {
					if child.Type != xmlquery.ElementNode {
						continue
					}
					if msg := elementMessage(child); msg != "" {
						messages = append(messages, msg)
					}
				}
				continue
			}
			if msg := elementMessage(node); msg != "" {
				messages = append(messages, msg)
			}
		}
	}
	return messages
}

// elementMessage extracts a single element's message: its trimmed text
// content, or the first non-empty message attribute.
func elementMessage(node *xmlquery.Node) string {
	if text := strings.TrimSpace(node.InnerText()); text != "" {
		return text
	}
	for _, name := range messageAttributeNames {
		if value, ok := elementAttr(node, name); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func scanStatusElements(doc *xmlquery.Node) []string {
	var messages []string
	for _, node := range xmlquery.QuerySelectorAll(doc, statusElementQuery) {
		code, ok := elementAttr(node, "code")
		if !ok || !statusErrorCodes[strings.ToLower(code)] {
			continue
		}
		if text := strings.TrimSpace(node.InnerText()); text != "" {
			messages = append(messages, text)
		} else {
			messages = append(messages, "Status code: "+code)
		}
	}
	return messages
}

func scanResultElements(doc *xmlquery.Node) []string {
	var messages []string
	for _, node := range xmlquery.QuerySelectorAll(doc, resultElementQuery) {
		typ, ok := elementAttr(node, "type")
		if !ok || !resultErrorTypes[strings.ToLower(typ)] {
			continue
		}
		msg := ""
		for _, name := range []string{"desc", "description", "message"} {
			if value, ok := elementAttr(node, name); ok {
				if trimmed := strings.TrimSpace(value); trimmed != "" {
					msg = trimmed
					break
				}
			}
		}
		if msg == "" {
			msg = strings.TrimSpace(node.InnerText())
		}
		if msg == "" {
			msg = "Result type: " + typ
		}
		messages = append(messages, msg)
	}
	return messages
}

func isErrorElementName(tag string) bool {
	for _, name := range errorElementNames {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}

// elementAttr looks up an attribute by name, case-insensitively, ignoring
// namespace prefixes.
func elementAttr(node *xmlquery.Node, name string) (string, bool) {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Name.Local, name) {
			return attr.Value, true
		}
	}
	return "", false
}

func dedupNonEmpty(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(messages))
	out := messages[:0]
	for _, msg := range messages {
		if msg == "" || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
