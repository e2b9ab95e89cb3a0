package admin

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAidNotFound         = errors.New("financial aid application not found")
)
