package booking

type CreateAppointmentRequest struct {
	ServiceID          int64  `json:"serviceId" binding:"required" validate:"required"`
	SlotID             int64  `json:"slotId" binding:"required" validate:"required"`
	ClientName         string `json:"clientName" binding:"required" validate:"required"`
	PropertyAddress    string `json:"propertyAddress" binding:"required" validate:"required"`
	Email              string `json:"email" binding:"required,email" validate:"required,email"`
	Phone              string `json:"phone" binding:"required" validate:"required"`
	ProblemDescription string `json:"problemDescription"`
}
