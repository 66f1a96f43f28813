/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a REST error carrying a domain error code. The public form hides component and operation.
type Error[T ~string] struct {
	ErrorCode            T
	ErrorComponent       Component
	Operation            string
	IncorrectValue       string
	HTTPStatus           int
	Err                  error
	usePublicAPIResponse bool
}

// errorJSON is the wire form of Error.
type errorJSON[T comparable] struct {
	ErrorCode       T         `json:"error"`
	Component       Component `json:"component,omitempty"`
	Operation       string    `json:"operation,omitempty"`
	IncorrectValue  string    `json:"incorrect_value,omitempty"`
	HTTPStatusField int       `json:"http_status,omitempty"`
	Description     string    `json:"error_description,omitempty"`
}

func (e *Error[T]) MarshalJSON() ([]byte, error) {
	if e.usePublicAPIResponse {
		return json.Marshal(&errorJSON[T]{
			ErrorCode:   e.ErrorCode,
			Description: e.getDescription(),
		})
	}

	return json.Marshal(&errorJSON[T]{
		ErrorCode:       e.ErrorCode,
		Component:       e.ErrorComponent,
		Operation:       e.Operation,
		IncorrectValue:  e.IncorrectValue,
		HTTPStatusField: e.HTTPStatus,
		Description:     e.Err.Error(),
	})
}

func (e *Error[T]) UnmarshalJSON(b []byte) error {
	var data errorJSON[T]

	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	e.ErrorCode = data.ErrorCode
	e.ErrorComponent = data.Component
	e.Operation = data.Operation
	e.IncorrectValue = data.IncorrectValue
	e.HTTPStatus = data.HTTPStatusField
	e.Err = errors.New(data.Description)

	return nil
}

func (e *Error[T]) Error() string {
	return e.getDescription()
}

func (e *Error[T]) getDescription() string {
	var description []string

	if e.ErrorComponent != "" {
		description = append(description, fmt.Sprintf("component: %s", e.ErrorComponent))
	}

	if e.Operation != "" {
		description = append(description, fmt.Sprintf("operation: %s", e.Operation))
	}

	if e.IncorrectValue != "" {
		description = append(description, fmt.Sprintf("incorrect value: %s", e.IncorrectValue))
	}

	if e.HTTPStatus != 0 {
		description = append(description, fmt.Sprintf("http status: %d", e.HTTPStatus))
	}

	return fmt.Sprintf("%s[%s]: %v", e.ErrorCode, strings.Join(description, "; "), e.Err)
}

func (e *Error[T]) WithComponent(component Component) *Error[T] {
	e.ErrorComponent = component

	return e
}

func (e *Error[T]) WithOperation(operation string) *Error[T] {
	e.Operation = operation

	return e
}

func (e *Error[T]) WithIncorrectValue(incorrectValue string) *Error[T] {
	e.IncorrectValue = incorrectValue

	return e
}

func (e *Error[T]) WithHTTPStatusField(httpStatus int) *Error[T] {
	e.HTTPStatus = httpStatus

	return e
}

func (e *Error[T]) WithErrorPrefix(errPrefix string) *Error[T] {
	e.Err = fmt.Errorf("%s: %w", errPrefix, e.Err)

	return e
}

func (e *Error[T]) UsePublicAPIResponse() *Error[T] {
	e.usePublicAPIResponse = true

	return e
}

func (e *Error[T]) Code() string {
	return string(e.ErrorCode)
}

func (e *Error[T]) Component() string {
	return string(e.ErrorComponent)
}

func (e *Error[T]) Unwrap() error {
	return e.Err
}
