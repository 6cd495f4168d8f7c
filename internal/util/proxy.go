package util

import (
	"cmp"
	"net/http"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// NewProxyFunc creates a proxy function for provider HTTP clients.
// Explicit proxy URLs replace the HTTP_PROXY/HTTPS_PROXY environment;
// HTTPS requests fall back to httpProxy when httpsProxy is empty.
// noProxy, when set, replaces NO_PROXY. Loopback hosts are never proxied.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	cfg := httpproxy.FromEnvironment()
	if httpProxy != "" || httpsProxy != "" {
		cfg.HTTPProxy = httpProxy
		cfg.HTTPSProxy = cmp.Or(httpsProxy, httpProxy)
	}
	if noProxy != "" {
		cfg.NoProxy = noProxy
	}

	proxy := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return proxy(req.URL)
	}
}
