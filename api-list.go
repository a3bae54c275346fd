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
	"fmt"
)

// List fetches records of one resource type. filters is validated against
// the resource's allow-list before anything is sent; unknown keys or
// non-scalar values fail with *InvalidFilterError. A nil or empty filters
// map lists without constraints, within whatever bounds the server imposes.
func (c *Client) List(ctx context.Context, res Resource, filters map[string]interface{}) ([]*Record, error) {
	ctx, reqCtx := c.newReqContext(ctx, res, "List")
	params, err := filterParams(res, filters, reqCtx)
	if err != nil {
		return nil, err
	}
	params.Set(paramGet, "1")
	params.Set(paramWhat, res.Name())
	return c.roundTrip(ctx, params, res.SchemaFiles().List, reqCtx)
}

// Get fetches the single record identified by key, expressed as a List call
// on the resource's primary key filter (the first allowed filter key).
// Returns nil with no error when the server matched nothing.
func (c *Client) Get(ctx context.Context, res Resource, key string) (*Record, error) {
	keys := res.FilterKeys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("resource %q defines no filter keys, cannot Get by key", res.Name())
	}
	records, err := c.List(ctx, res, map[string]interface{}{keys[0]: key})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}
