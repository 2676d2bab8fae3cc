// Package util holds small transport helpers shared by the SPARQL client.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc creates a proxy function for the archive client. Explicit
// proxy URLs from the configuration win; otherwise the standard environment
// variables apply.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
