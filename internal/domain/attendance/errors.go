package attendance

import "errors"

var (
	ErrDeviceUnreachable = errors.New("Attendance device unreachable")
	ErrDuplicatePunch    = errors.New("Attendance punch already recorded")
)
