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

import "time"

// Form parameter names understood by the XMLCore endpoint.
const (
	paramGet     = "get"
	paramPut     = "put"
	paramWhat    = "what"
	paramToken   = "token"
	paramXMLData = "xmldata"
)

// transportRootTag is the root element name some XMLCore endpoints wrap
// their responses in. Responses under any other root are treated as a flat
// record list.
const transportRootTag = "transport"

// attributeFieldPrefix marks record fields that originated from an XML
// attribute rather than a child element.
const attributeFieldPrefix = "@"

const (
	defaultDialTimeout    = 15 * time.Second
	defaultRequestTimeout = 2 * time.Minute

	// maxErrorBodyLength caps how much of a failed HTTP response body is
	// retained for diagnostics.
	maxErrorBodyLength = 1 << 20
)

// minTokenLength is the shortest API token the client accepts at
// construction time. Directo issues considerably longer tokens; this only
// catches obviously truncated values early.
const minTokenLength = 8
