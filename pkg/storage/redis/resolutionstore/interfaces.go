/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolutionstore

import redisapi "github.com/redis/go-redis/v9"

type redisClient interface {
	API() redisapi.UniversalClient
	Key(parts ...string) string
}
