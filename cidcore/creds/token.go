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

package creds

import (
	"time"

	"dirpx.dev/callerid/cidcore/errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the expiry time encoded in an access token's exp
// claim. The token's signature is NOT verified: the server signed it and
// this library only needs to know when to refresh, not to trust it.
//
// A token that does not parse, or that carries no exp claim, yields a
// ValidationError. The token itself never appears in the error.
func TokenExpiry(access string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(access, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, &errors.ValidationError{Type: "Bundle", Field: "access", Reason: "access token is not a valid JWT: " + err.Error()}
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, &errors.ValidationError{Type: "Bundle", Field: "access", Reason: "access token carries no exp claim"}
	}
	return exp.Time, nil
}

// TokenExpired reports whether an access token's exp claim has passed.
// Embedding applications SHOULD call this before issuing requests and
// refresh ahead of the 401 the server would otherwise return.
func TokenExpired(access string) (bool, error) {
	exp, err := TokenExpiry(access)
	if err != nil {
		return false, err
	}
	return time.Now().After(exp), nil
}
