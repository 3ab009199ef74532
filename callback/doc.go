// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package callback validates the redirect an AgeKey authorization ends with.

A Use-flow callback is checked in a fixed order and the first failure aborts
validation:

 1. an error parameter is classified and returned
 2. the state must equal the expected state (constant-time)
 3. an id_token must be present and decodable
 4. the token nonce must equal the expected nonce (constant-time)
 5. the token must not be expired
 6. the token must carry the age_thresholds result

Create-flow callbacks carry no token; [ParseCreate] reports success or the
error the server returned without failing.

Token signatures are not verified here.
*/
package callback
