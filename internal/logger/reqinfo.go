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

package logger

import (
	"context"
	"fmt"
	"sync"
)

type contextKeyType string

const contextLogKey = contextKeyType("directolog")

// KeyVal - appended to ReqInfo.tags.
type KeyVal struct {
	Key string
	Val string
}

// ReqInfo stores diagnostic information about one API call.
// Reading/writing directly to struct requires appropriate R/W lock.
type ReqInfo struct {
	Host      string // API host the call targets
	Resource  string // resource wire name - item, customer, invoice etc.
	Operation string // operation name - List, Get, Put, PutBatch
	RequestID string // client-generated request id
	tags      []KeyVal
	sync.RWMutex
}

// NewReqInfo returns a ReqInfo for one call. The API token must never be
// placed in any field or tag.
func NewReqInfo(host, resource, operation, requestID string) *ReqInfo {
	return &ReqInfo{
		Host:      host,
		Resource:  resource,
		Operation: operation,
		RequestID: requestID,
	}
}

// AppendTags - appends key/val to ReqInfo.tags.
func (r *ReqInfo) AppendTags(key, val string) *ReqInfo {
	if r == nil {
		return nil
	}
	r.Lock()
	defer r.Unlock()
	r.tags = append(r.tags, KeyVal{key, val})
	return r
}

// GetTags - returns a copy of the tags.
func (r *ReqInfo) GetTags() []KeyVal {
	if r == nil {
		return nil
	}
	r.RLock()
	defer r.RUnlock()
	return append([]KeyVal(nil), r.tags...)
}

// String renders the request info as a compact key=value line.
func (r *ReqInfo) String() string {
	if r == nil {
		return ""
	}
	r.RLock()
	defer r.RUnlock()
	s := fmt.Sprintf("requestId=%s host=%s resource=%s operation=%s",
		r.RequestID, r.Host, r.Resource, r.Operation)
	for _, tag := range r.tags {
		s += fmt.Sprintf(" %s=%s", tag.Key, tag.Val)
	}
	return s
}

// SetReqInfo sets ReqInfo in the context.
func SetReqInfo(ctx context.Context, req *ReqInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextLogKey, req)
}

// GetReqInfo returns the ReqInfo if set.
func GetReqInfo(ctx context.Context) *ReqInfo {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(contextLogKey).(*ReqInfo)
	return r
}
