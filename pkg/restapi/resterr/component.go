/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

type Component string

const (
	AuthorizationSvcComponent   Component = "authorization.service"
	AuthorizationStoreComponent Component = "authorization.resolution-store"
	TrustResolverComponent      Component = "clienttrust.resolver"
	WalletComponent             Component = "wallet.context"
)
