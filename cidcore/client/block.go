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

	"dirpx.dev/callerid/cidcore/errors"
	"dirpx.dev/callerid/cidcore/model"
	"dirpx.dev/callerid/cidcore/model/identity"
	"dirpx.dev/callerid/cidcore/model/phone"
)

// BlockProfile blocks a phone number. blockContact blocks it for calls,
// meFullBlock hides the account from its social surface; the server
// accepts any combination, including lifting one while keeping the
// other.
func (c *Client) BlockProfile(ctx context.Context, number phone.Number, blockContact, meFullBlock bool) (bool, error) {
	if number.IsZero() {
		return false, &errors.ValidationError{Type: "BlockedNumber", Field: "phone_number", Reason: "phone number must be provided"}
	}

	body := map[string]any{
		"block_contact": blockContact,
		"me_full_block": meFullBlock,
		"phone_number":  number.String(),
	}
	res, err := c.doMap(ctx, http.MethodPost, "/main/users/profile/block/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// UnblockProfile lifts a block. The scope flags select which block to
// lift; the server models "unblocked" as posting the block endpoint
// with the corresponding flag cleared.
func (c *Client) UnblockProfile(ctx context.Context, number phone.Number, unblockContact, meFullUnblock bool) (bool, error) {
	return c.BlockProfile(ctx, number, !unblockContact, !meFullUnblock)
}

// BlockNumbers blocks several numbers for calls in one request.
func (c *Client) BlockNumbers(ctx context.Context, numbers []phone.Number) (bool, error) {
	if len(numbers) == 0 {
		return false, &errors.ValidationError{Type: "BlockedNumber", Reason: "at least one phone number must be provided"}
	}

	body := map[string]any{"phone_numbers": numbers}
	res, err := c.doMap(ctx, http.MethodPost, "/main/users/profile/bulk-block/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "block_contact")
}

// UnblockNumbers lifts call blocks on several numbers in one request.
func (c *Client) UnblockNumbers(ctx context.Context, numbers []phone.Number) (bool, error) {
	if len(numbers) == 0 {
		return false, &errors.ValidationError{Type: "BlockedNumber", Reason: "at least one phone number must be provided"}
	}

	body := map[string]any{"phone_numbers": numbers}
	res, err := c.doMap(ctx, http.MethodPost, "/main/users/profile/bulk-unblock/", body)
	if err != nil {
		return false, err
	}
	return boolKey(res, "success")
}

// BlockedNumbers lists the account's current blocks.
func (c *Client) BlockedNumbers(ctx context.Context) ([]identity.BlockedNumber, error) {
	list, err := c.doList(ctx, http.MethodGet, "/main/settings/blocked-phone-numbers/", nil)
	if err != nil {
		return nil, err
	}

	maps, err := asMaps(list)
	if err != nil {
		return nil, err
	}
	return model.HydrateList[identity.BlockedNumber](c.hydrator, maps)
}

// BlockNumber implements identity.Blocklister.
func (c *Client) BlockNumber(ctx context.Context, number phone.Number, blockContact, meFullBlock bool) (bool, error) {
	return c.BlockProfile(ctx, number, blockContact, meFullBlock)
}

// UnblockNumber implements identity.Blocklister.
func (c *Client) UnblockNumber(ctx context.Context, number phone.Number, unblockContact, meFullUnblock bool) (bool, error) {
	return c.UnblockProfile(ctx, number, unblockContact, meFullUnblock)
}

// Compile-time verification that Client is a usable blocklister.
var _ identity.Blocklister = (*Client)(nil)
