// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"github.com/tfbq/tfbq/internal/cacheutil"
	"github.com/tfbq/tfbq/internal/config"
)

// cacheSub scopes cache entries by bucket and key so two modules pointing at
// different state objects never collide.
func cacheSub(be *BackendS3) []string {
	return []string{be.Decl.Bucket, be.Decl.Key}
}

// CacheEntryPath returns the path to the cache entry for the given key, if it
// exists. The key is hashed and used as the filename.
func CacheEntryPath(be *BackendS3, key string) (string, bool) {
	p, exists := cacheutil.EntryPath(cacheSub(be), key)
	if !exists {
		return "", false
	}
	return p, true
}

// CacheReader reads the cache entry for the given key, if it exists. If the
// cache is disabled, or the entry does not exist, the second return value will
// be false.
func CacheReader(be *BackendS3, key string) (*cacheutil.Entry, bool) {
	return cacheutil.Read(cacheSub(be), key)
}

func CacheWriter(be *BackendS3, key string, data []byte) error {
	return cacheutil.Write(cacheSub(be), key, data)
}

func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}
