package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix starts every environment variable read by [Load].
const EnvPrefix = "PROCVIEW_"

// Short environment names. Every other setting is reachable through its key
// path, e.g. PROCVIEW_STORE_REDIS_DB or PROCVIEW_DEFINITIONS_TIMEOUT.
const (
	EnvAddr           = "PROCVIEW_ADDR"
	EnvStore          = "PROCVIEW_STORE"
	EnvStoreDir       = "PROCVIEW_STORE_DIR"
	EnvRedisAddr      = "PROCVIEW_REDIS_ADDR"
	EnvRedisPassword  = "PROCVIEW_REDIS_PASSWORD"
	EnvMongoURI       = "PROCVIEW_MONGO_URI"
	EnvHistoryLimit   = "PROCVIEW_HISTORY_LIMIT"
	EnvBlacklist      = "PROCVIEW_HISTORY_BLACKLIST"
	EnvDefinitionsURL = "PROCVIEW_DEFINITIONS_URL"
	EnvProcessingType = "PROCVIEW_PROCESSING_TYPE"
	EnvCatalogFile    = "PROCVIEW_CATALOG_FILE"
	EnvCacheTTL       = "PROCVIEW_CACHE_TTL"
	EnvCache          = "PROCVIEW_CACHE"
	EnvCacheRedisAddr = "PROCVIEW_CACHE_REDIS_ADDR"
)

var envAliases = map[string]string{
	EnvAddr:           "server.addr",
	EnvStore:          "store.backend",
	EnvRedisAddr:      "store.redis.addr",
	EnvRedisPassword:  "store.redis.password",
	EnvMongoURI:       "store.mongo.uri",
	EnvDefinitionsURL: "definitions.base_url",
	EnvProcessingType: "definitions.processing_type",
	EnvCatalogFile:    "definitions.catalog_file",
	EnvCacheTTL:       "definitions.cache_ttl",
	EnvCache:          "cache.backend",
}

const blacklistKey = "history.blacklist"

// envProvider maps PROCVIEW_* variables onto the given config keys.
// Unknown variables are skipped. The blacklist is a comma-separated list
// and the literal "-" clears it.
func envProvider(keys []string) *env.Env {
	byName := make(map[string]string, len(keys)+len(envAliases))
	for _, k := range keys {
		byName[EnvPrefix+strings.ToUpper(strings.ReplaceAll(k, ".", "_"))] = k
	}
	for name, k := range envAliases {
		byName[name] = k
	}
	byName[EnvBlacklist] = blacklistKey

	return env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, any) {
		key, ok := byName[name]
		if !ok || value == "" {
			return "", nil
		}
		if key == blacklistKey {
			return key, splitList(value)
		}
		return key, value
	})
}

func splitList(s string) []string {
	out := []string{}
	if s == "-" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
