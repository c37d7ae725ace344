package diagnosis

import "errors"

var ErrUnknownStrategy = errors.New("unknown diagnosis strategy")
