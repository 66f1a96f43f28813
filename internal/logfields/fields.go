/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAdditionalMessage = "additionalMessage"
	FieldAttempt           = "attempt"
	FieldChain             = "chain"
	FieldEvent             = "event"
	FieldIdentityURI       = "identityURI"
	FieldOperation         = "operation"
	FieldOutcome           = "outcome"
	FieldPackageName       = "packageName"
	FieldReason            = "reason"
	FieldRequestID         = "requestID"
	FieldResolutionKind    = "resolutionKind"
	FieldSleep             = "sleep"
	FieldSource            = "source"
	FieldState             = "verificationState"
	FieldStoreType         = "storeType"
	FieldUserLogLevel      = "userLogLevel"
)

// WithAdditionalMessage sets the AdditionalMessage field.
func WithAdditionalMessage(value string) zap.Field {
	return zap.Any(FieldAdditionalMessage, value)
}

// WithAttempt sets the Attempt field (1-based lookup attempt number).
func WithAttempt(attempt int) zap.Field {
	return zap.Int(FieldAttempt, attempt)
}

// WithChain sets the Chain field.
func WithChain(chain string) zap.Field {
	return zap.String(FieldChain, chain)
}

// WithEvent sets the Event field.
func WithEvent(event interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldEvent, event))
}

// WithIdentityURI sets the IdentityURI field.
func WithIdentityURI(identityURI string) zap.Field {
	return zap.String(FieldIdentityURI, identityURI)
}

// WithOperation sets the Operation field.
func WithOperation(operation string) zap.Field {
	return zap.String(FieldOperation, operation)
}

// WithOutcome sets the Outcome field.
func WithOutcome(outcome string) zap.Field {
	return zap.String(FieldOutcome, outcome)
}

// WithPackageName sets the PackageName field.
func WithPackageName(packageName string) zap.Field {
	return zap.String(FieldPackageName, packageName)
}

// WithReason sets the Reason field.
func WithReason(reason string) zap.Field {
	return zap.String(FieldReason, reason)
}

// WithRequestID sets the RequestID (correlation handle) field.
func WithRequestID(requestID string) zap.Field {
	return zap.String(FieldRequestID, requestID)
}

// WithResolutionKind sets the ResolutionKind field.
func WithResolutionKind(kind string) zap.Field {
	return zap.String(FieldResolutionKind, kind)
}

// WithSleep sets the sleep field.
func WithSleep(sleep time.Duration) zap.Field {
	return zap.Duration(FieldSleep, sleep)
}

// WithSource sets the Source (evidence source) field.
func WithSource(source string) zap.Field {
	return zap.String(FieldSource, source)
}

// WithState sets the verification state field.
func WithState(state string) zap.Field {
	return zap.String(FieldState, state)
}

// WithStoreType sets the StoreType field.
func WithStoreType(storeType string) zap.Field {
	return zap.String(FieldStoreType, storeType)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
