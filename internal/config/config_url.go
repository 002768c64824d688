// Homepage API - Dashboard Backend for Weather, Transit and Traffic
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/homepage-api

package config

import (
	"errors"
	"fmt"
	"net/url"
)

// validateBaseURL checks a URL that API paths are appended to, such as
// "{url}/api/states". A path prefix is allowed so that services behind a
// reverse-proxy subpath work. The returned error does not name the field;
// callers add it.
func validateBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("cannot parse %q: %w", rawURL, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		return errors.New("host is required")
	case u.User != nil:
		return errors.New("credentials belong in the token, not the URL")
	case u.RawQuery != "" || u.ForceQuery:
		return fmt.Errorf("query parameters are not allowed: ?%s", u.RawQuery)
	case u.Fragment != "":
		return fmt.Errorf("fragment is not allowed: #%s", u.Fragment)
	}
	return nil
}
