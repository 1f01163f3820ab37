package auth

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Secret    string `json:"secret" binding:"required"`
}

type PlannerLoginRequest struct {
	Secret string `json:"secret" binding:"required"`
}
