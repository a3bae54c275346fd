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
	"net/url"
)

// Put writes one record. The record is serialized with the resource's write
// shape, optionally validated against the resource's put schema, posted, and
// the server's response is run through the same error-detection and decoding
// pipeline as reads. The returned records are whatever the server echoed
// back, typically the stored record with server-assigned fields.
func (c *Client) Put(ctx context.Context, res Resource, record *Record) ([]*Record, error) {
	ctx, reqCtx := c.newReqContext(ctx, res, "Put")
	return c.putRecords(ctx, res, []*Record{record}, reqCtx)
}

// PutBatch writes several records in one request.
func (c *Client) PutBatch(ctx context.Context, res Resource, records []*Record) ([]*Record, error) {
	ctx, reqCtx := c.newReqContext(ctx, res, "PutBatch")
	return c.putRecords(ctx, res, records, reqCtx)
}

func (c *Client) putRecords(ctx context.Context, res Resource, records []*Record, reqCtx map[string]string) ([]*Record, error) {
	shape := res.WriteShape()
	xmlData, err := BuildBatchRequestXML(shape.Root, shape.Record, records, shape.Key)
	if err != nil {
		return nil, err
	}
	if c.validator != nil && res.SchemaFiles().Put != "" {
		if err := c.validator.Validate(xmlData, res.SchemaFiles().Put, reqCtx); err != nil {
			return nil, err
		}
	}
	params := url.Values{}
	params.Set(paramPut, "1")
	params.Set(paramWhat, res.Name())
	params.Set(paramXMLData, xmlData)
	// Put responses have no published schema; detection and decoding still
	// apply.
	return c.roundTrip(ctx, params, "", reqCtx)
}
