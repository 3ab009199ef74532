// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/CadamTech/agekey-sdk/akerror"
)

//go:embed data/use-claims.schema.json data/authorization-details.schema.json
var embeddedSchemaFS embed.FS

const (
	useClaimsSchema            = "data/use-claims.schema.json"
	authorizationDetailsSchema = "data/authorization-details.schema.json"
)

// ValidateUseClaims validates a serialized Use-flow claims object.
func ValidateUseClaims(data []byte) error {
	return validateAgainstSchema(data, useClaimsSchema, "claims schema validation failed")
}

// ValidateAuthorizationDetails validates a serialized authorization_details array.
func ValidateAuthorizationDetails(data []byte) error {
	return validateAgainstSchema(data, authorizationDetailsSchema, "authorization_details schema validation failed")
}

// validateAgainstSchema validates data against a named embedded schema file.
func validateAgainstSchema(data []byte, schemaFile, errPrefix string) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return akerror.Wrap(akerror.KindInvalidRequest, err, errPrefix)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return akerror.Wrap(akerror.KindInvalidRequest, formatNumberedErrors(errPrefix, msgs), "")
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
