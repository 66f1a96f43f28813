/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MarshalJSON(t *testing.T) {
	type testCase[T interface{ ~string }] struct {
		name    string
		e       Error[T]
		want    []byte
		wantErr assert.ErrorAssertionFunc
	}
	tests := []testCase[string]{
		{
			name: "Success: with usePublicAPIResponse",
			e: Error[string]{
				ErrorCode:            "already_resolved",
				ErrorComponent:       "authorization.service",
				Operation:            "Approve",
				IncorrectValue:       "req-1",
				HTTPStatus:           http.StatusConflict,
				Err:                  errors.New("authorization request already resolved"),
				usePublicAPIResponse: true,
			},
			want: []byte("{" +
				"\"error\":\"already_resolved\"," +
				"\"error_description\":\"already_resolved[component: authorization.service; operation: Approve; " +
				"incorrect value: req-1; http status: 409]: authorization request already resolved\"}"),
			wantErr: assert.NoError,
		},
		{
			name: "Success: without usePublicAPIResponse",
			e: Error[string]{
				ErrorCode:      "already_resolved",
				ErrorComponent: "authorization.service",
				Operation:      "Approve",
				IncorrectValue: "req-1",
				HTTPStatus:     http.StatusConflict,
				Err:            errors.New("authorization request already resolved"),
			},
			want: []byte("{" +
				"\"error\":\"already_resolved\"," +
				"\"component\":\"error component\"," +
				"\"operation\":\"error operation\"," +
				"\"incorrect_value\":\"error incorrect value\"," +
				"\"http_status\":409," +
				"\"error_description\":\"authorization request already resolved\"" +
				"}"),
			wantErr: assert.NoError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.e.MarshalJSON()
			if !tt.wantErr(t, err, "MarshalJSON()") {
				return
			}
			assert.Equalf(t, tt.want, got, "MarshalJSON()")
		})
	}
}

func TestError_UnmarshalJSON(t *testing.T) {
	type args struct {
		b []byte
	}

	type testCase[T interface{ ~string }] struct {
		name    string
		args    args
		want    Error[T]
		wantErr assert.ErrorAssertionFunc
	}
	tests := []testCase[string]{
		{
			name: "Success",
			args: args{
				b: []byte("{" +
					"\"error\":\"already_resolved\"," +
					"\"component\":\"error component\"," +
					"\"operation\":\"error operation\"," +
					"\"incorrect_value\":\"error incorrect value\"," +
					"\"http_status\":409," +
					"\"error_description\":\"authorization request already resolved\"" +
					"}"),
			},
			want: Error[string]{
				ErrorCode:      "already_resolved",
				ErrorComponent: "authorization.service",
				Operation:      "Approve",
				IncorrectValue: "req-1",
				HTTPStatus:     http.StatusConflict,
				Err:            errors.New("authorization request already resolved"),
			},
			wantErr: assert.NoError,
		},
		{
			name: "Failure",
			args: args{
				b: []byte("{"),
			},
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Error[string]{}

			err := e.UnmarshalJSON(tt.args.b)

			if !tt.wantErr(t, err) {
				return
			}

			assert.Equal(t, tt.want, e)
		})
	}
}

func TestError_Builders(t *testing.T) {
	err := Error[string]{
		ErrorCode: "already_resolved",
		Err:       errors.New("authorization request already resolved"),
	}

	assert.Equal(t, "already_resolved", err.Code())
	assert.Equal(t, errors.New("authorization request already resolved"), err.Unwrap())
	assert.Equal(t, "already_resolved[]: authorization request already resolved", err.Error())

	_ = err.WithComponent("component")

	assert.Equal(t, "component", err.Component())
	assert.Equal(t, "already_resolved[component: component]: authorization request already resolved", err.Error())

	_ = err.WithOperation("operation")

	assert.Equal(t, "already_resolved[component: component; operation: operation]: authorization request already resolved", err.Error())

	_ = err.WithIncorrectValue("incorrectValue")

	assert.Equal(t, "already_resolved[component: component; operation: operation; "+
		"incorrect value: incorrectValue]: authorization request already resolved", err.Error())

	_ = err.WithHTTPStatusField(http.StatusOK)

	assert.Equal(t, "already_resolved[component: component; operation: operation; "+
		"incorrect value: incorrectValue; http status: 200]: authorization request already resolved", err.Error())

	_ = err.WithErrorPrefix("err prefix")

	assert.Equal(t, "already_resolved[component: component; operation: operation; "+
		"incorrect value: incorrectValue; http status: 200]: err prefix: authorization request already resolved", err.Error())

	_ = err.UsePublicAPIResponse()

	assert.True(t, err.usePublicAPIResponse)
}
