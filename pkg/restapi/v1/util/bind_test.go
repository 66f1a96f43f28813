/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/walletauthz/pkg/restapi/v1/util"
)

func newContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestReadBody(t *testing.T) {
	var body struct {
		Chain string `json:"chain"`
	}

	ctx, _ := newContext(`{"chain":"solana:devnet"}`)
	require.NoError(t, util.ReadBody(ctx, &body))
	require.Equal(t, "solana:devnet", body.Chain)

	ctx, _ = newContext(`{"chain":`)
	require.ErrorContains(t, util.ReadBody(ctx, &body), "read request body")
}

func TestWriteOutput(t *testing.T) {
	ctx, rec := newContext("")
	require.NoError(t, util.WriteOutput(ctx)(map[string]string{"id": "req-1"}, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"req-1"}`, rec.Body.String())

	ctx, rec = newContext("")
	require.NoError(t, util.WriteOutputWithCode(http.StatusCreated, ctx)(map[string]string{"id": "req-1"}, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	ctx, _ = newContext("")
	require.EqualError(t, util.WriteOutput(ctx)(nil, errors.New("boom")), "boom")

	ctx, _ = newContext("")
	require.Error(t, util.WriteOutput(ctx)(func() {}, nil))
}
