package domain

// Event date lead-time window, in calendar days from today
const (
	MinLeadDays = 1
	MaxLeadDays = 365
)

// Business validation constants
const (
	MaxNotesLength          = 1000
	MaxTransactionRefLength = 128
)

// Date format constants
const (
	DateFormat       = "2006-01-02" // YYYY-MM-DD
	LocaleDateFormat = "02/01/2006" // DD/MM/YYYY
)

// InactiveStatuses список статусов, которые не занимают пространство
// Используется при проверке доступности
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
