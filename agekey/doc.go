// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package agekey is the client for AgeKey age verification.

A [Client] drives two flows:

  - Use: redirect the user to AgeKey to prove their age against up to five
    thresholds, then validate the callback and read the result.
  - Create: push a verification the relying party performed itself to AgeKey
    with a pushed authorization request (PAR), then redirect the user to
    store it as an AgeKey.

# Use Flow

	client, err := agekey.New(agekey.Config{
	    ClientID:    "ak_test_...",
	    RedirectURI: "https://shop.example.com/agekey/callback",
	})

	auth, err := client.Use().AuthorizationURL(agekey.UseOptions{
	    Options: claims.Options{AgeThresholds: claims.AgeThresholds{18, 21}},
	})
	// persist auth.State and auth.Nonce, redirect to auth.URL

	result, err := client.Use().HandleCallback(callbackURL, callback.Expected{
	    State: storedState,
	    Nonce: storedNonce,
	})
	if result.Meets(18) {
	    // allow
	}

# Create Flow

The Create flow needs the client secret and must run on a server.

	init, err := client.Create().Initiate(ctx, agekey.CreateOptions{
	    Detail: verification.AuthorizationDetail{
	        Method:         claims.MethodIDDocScan,
	        Age:            verification.AtLeastYears(18),
	        VerifiedAt:     time.Now(),
	        VerificationID: "ver-123",
	        Provenance:     verification.ProvenanceIDDocScan,
	    },
	})
	// redirect to init.URL

# Errors

Every error is an *akerror.Error; use akerror.KindOf to branch on the failure
class. The client performs no retries.
*/
package agekey
