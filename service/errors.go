package service

import "errors"

var (
	ErrUnknownTargetMode = errors.New("unknown target mode")
	ErrNothingToShare    = errors.New("no result to share")
	ErrNothingToExport   = errors.New("no result to export")
	ErrShareUnavailable  = errors.New("share mechanism unavailable")
	ErrUnknownFormat     = errors.New("unknown export format")
)
