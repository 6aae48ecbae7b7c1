package rules

// User-facing rule messages.
const (
	MsgNameEqualsDescription = "Title and Description must be different."
	MsgNameNotUnique         = "Title must be unique."
	MsgInstructorAttends     = "you are not add instructor as attendee!"

	// TitleCapacityWarning is shared by both seat warnings.
	TitleCapacityWarning = "Something bad happened"
	MsgSeatsNegative     = "You can not add a negative value"
	MsgTooManyAttendees  = "You cannot add more attendees than the number of seats"
)

// Hook names as registered on the registries.
const (
	HookCheckNameDescription      = "check_name_description"
	HookCheckNameUnique           = "check_name_unique"
	HookComputeTakenSeats         = "compute_taken_seats"
	HookSeatsAttendeesAdvisory    = "seats_attendees_advisory"
	HookCheckCapacityStrict       = "check_capacity_strict"
	HookCheckInstructorNotAttends = "check_instructor_not_attendee"
)
