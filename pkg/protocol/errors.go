package protocol

import "errors"

// ErrUnknownType is returned when a message carries an undefined type.
var ErrUnknownType = errors.New("unknown message type")
