package scenario

import "errors"

var ErrUnknownAction = errors.New("unknown action")
