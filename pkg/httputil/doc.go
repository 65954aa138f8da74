// Package httputil provides the caching and retry layer under the HTTP
// payload fetcher.
//
// # Caching
//
// [Cache] stores JSON values as files under ~/.cache/packnav/ (or a chosen
// directory) with a TTL based on file modification time. Keys are hashed, so
// URLs can be used directly; [Cache.Namespace] scopes keys per source:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	payloads := cache.Namespace("payload:")
//	if ok, _ := payloads.Get(url, &tree); !ok {
//	    tree = fetch(url)
//	    payloads.Set(url, tree)
//	}
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// wrapped in [RetryableError]. Network failures and 5xx responses should be
// wrapped; a 404 should not.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return get(ctx, url)
//	})
//
// The cache can be cleared with `packnav cache clear` or by deleting the
// cache directory.
package httputil
