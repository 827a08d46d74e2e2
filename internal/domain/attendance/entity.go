package attendance

import "time"

type Source string

const (
	SourceImport Source = "import"
	SourceDevice Source = "device"
	SourceManual Source = "manual"
)

// Attendance is one punch. EmployeeCode is the badge number as reported by
// the clock or the spreadsheet; it is matched to employees lazily because
// devices routinely report codes for people no longer in the system.
type Attendance struct {
	ID           string
	EmployeeCode string
	PunchTime    time.Time
	Source       Source
	DeviceSerial *string

	CreatedAt time.Time

	// Join field for listings
	EmployeeName *string
}
