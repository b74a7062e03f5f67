package model

import "errors"

var (
	ErrInvalidMarkerCount   = errors.New("exactly 10 markers are required")
	ErrMalformedCoordinates = errors.New("coordinates must be [longitude, latitude]")
	ErrZoneNotFound         = errors.New("zone not found")
	ErrMarkerNotFound       = errors.New("marker not found")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrActivityLogNotFound  = errors.New("activity log not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("token missing, invalid or expired")
)
