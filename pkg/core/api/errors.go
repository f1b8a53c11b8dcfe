package api

import "errors"

var errMissingToken = errors.New("missing or malformed bearer token")
