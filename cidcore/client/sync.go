/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package client

import (
	"context"
	"net/http"

	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/calllog"
	"dirpx.dev/callerid/cidcore/model/phonebook"
)

// AddContacts uploads phonebook entries to the account. The raw entries
// are validated through phonebook.ValidateRecords first; one bad entry
// fails the whole batch before anything is sent. The server's sync
// result object is returned as-is.
func (c *Client) AddContacts(ctx context.Context, contacts []map[string]any) (map[string]any, error) {
	records, err := phonebook.ValidateRecords(contacts)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"add": records, "is_first": false, "remove": []phonebook.Record{}}
	return c.doMap(ctx, http.MethodPost, "/main/contacts/sync/", body)
}

// RemoveContacts removes previously uploaded phonebook entries from the
// account, validating them the same way AddContacts does.
func (c *Client) RemoveContacts(ctx context.Context, contacts []map[string]any) (map[string]any, error) {
	records, err := phonebook.ValidateRecords(contacts)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"add": []phonebook.Record{}, "is_first": false, "remove": records}
	return c.doMap(ctx, http.MethodPost, "/main/contacts/sync/", body)
}

// AddCalls uploads call-log entries to the account and returns the
// entries the server accepted, hydrated. Raw entries run through
// calllog.ValidateEntries, which fills the documented defaults for
// missing fields and rejects unknown call types. The server answers
// additions with an object carrying the accepted entries under
// "added_list".
func (c *Client) AddCalls(ctx context.Context, calls []map[string]any) ([]calllog.Entry, error) {
	entries, err := calllog.ValidateEntries(calls)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"add": entries, "remove": []calllog.Entry{}}
	res, err := c.doMap(ctx, http.MethodPost, "/main/call-log/change-sync/", body)
	if err != nil {
		return nil, err
	}

	added, err := asMaps(res["added_list"])
	if err != nil {
		return nil, err
	}
	return model.HydrateList[calllog.Entry](c.hydrator, added)
}

// RemoveCalls removes call-log entries from the account and returns the
// entries the server dropped, hydrated. Unlike additions, the server
// answers removals with the dropped entries as a bare array.
func (c *Client) RemoveCalls(ctx context.Context, calls []map[string]any) ([]calllog.Entry, error) {
	entries, err := calllog.ValidateEntries(calls)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"add": []calllog.Entry{}, "remove": entries}
	res, err := c.do(ctx, http.MethodPost, "/main/call-log/change-sync/", body)
	if err != nil {
		return nil, err
	}

	removed, err := asMaps(res)
	if err != nil {
		return nil, err
	}
	return model.HydrateList[calllog.Entry](c.hydrator, removed)
}
