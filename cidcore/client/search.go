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
	stderrors "errors"
	"net/http"

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/identity"
	"dirpx.dev/callerid/cidcore/model/phone"
)

// PhoneSearch looks a phone number up in the crowd-sourced directory.
//
// An unknown number is (nil, nil): the server answers it with its
// canonical 404 "Not found." and callers treat that as an empty result,
// not a failure. Any other non-2xx answer is returned as *errors.APIError.
func (c *Client) PhoneSearch(ctx context.Context, number phone.Number) (*identity.Contact, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if number.IsZero() {
		return nil, &errors.ValidationError{Type: "Contact", Field: "phone_number", Reason: "phone number must be provided"}
	}

	res, err := c.doMap(ctx, http.MethodGet, "/main/contacts/search/?phone_number="+number.String(), nil)
	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, nil
		}
		return nil, err
	}

	raw, _ := res["contact"].(map[string]any)
	return model.Hydrate[identity.Contact](c.hydrator, raw)
}
