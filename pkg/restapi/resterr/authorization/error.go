/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/trustbloc/walletauthz/pkg/restapi/resterr"
)

// errorCode is the error vocabulary of the authorization API.
type errorCode string

const (
	invalidRequest  errorCode = "invalid_request"
	notFound        errorCode = "not_found"
	alreadyExists   errorCode = "already_exists"
	alreadyResolved errorCode = "already_resolved"
	requestClosed   errorCode = "request_closed"
	approvalBlocked errorCode = "approval_blocked"
	walletNotReady  errorCode = "wallet_not_ready"
	systemError     errorCode = "system_error"
	chainNotAllowed errorCode = "chain_not_permitted"
	notYetResolved  errorCode = "not_resolved"
)

// Error represents an authorization API error.
type Error = resterr.Error[errorCode]

func NewInvalidRequestError(err error) *Error {
	return newError(invalidRequest, http.StatusBadRequest, err)
}

func NewChainNotAllowedError(err error) *Error {
	return newError(chainNotAllowed, http.StatusBadRequest, err)
}

func NewNotFoundError(err error) *Error {
	return newError(notFound, http.StatusNotFound, err)
}

func NewNotResolvedError(err error) *Error {
	return newError(notYetResolved, http.StatusNotFound, err)
}

func NewAlreadyExistsError(err error) *Error {
	return newError(alreadyExists, http.StatusConflict, err)
}

func NewAlreadyResolvedError(err error) *Error {
	return newError(alreadyResolved, http.StatusConflict, err)
}

func NewRequestClosedError(err error) *Error {
	return newError(requestClosed, http.StatusGone, err)
}

func NewApprovalBlockedError(err error) *Error {
	return newError(approvalBlocked, http.StatusPreconditionFailed, err)
}

func NewWalletNotReadyError(err error) *Error {
	return newError(walletNotReady, http.StatusServiceUnavailable, err)
}

func NewSystemError(err error) *Error {
	return newError(systemError, http.StatusInternalServerError, err)
}

func newError(code errorCode, status int, err error) *Error {
	return &Error{
		ErrorCode:  code,
		Err:        err,
		HTTPStatus: status,
	}
}

// Parse decodes an error response body.
func Parse(reader io.Reader) *Error {
	b, err := io.ReadAll(reader)
	if err != nil {
		return NewSystemError(fmt.Errorf("read authorization error: %w", err))
	}

	var e *Error

	if err = json.Unmarshal(b, &e); err != nil {
		return NewSystemError(fmt.Errorf("decode authorization error from body: %s, err: %w", string(b), err))
	}

	return e
}
