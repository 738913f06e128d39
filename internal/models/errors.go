package models

import "errors"

var ErrNotFound = errors.New("the requested resource does not exist")
