package topology

import "errors"

var (
	ErrDuplicateNode = errors.New("duplicate node")

	ErrUnknownNode = errors.New("unknown node")

	ErrSealed = errors.New("topology sealed")

	ErrSelfLink = errors.New("self link")
)
