package dto

type RegisterRequestDTO struct {
	Phone    string `json:"phone" example:"+79991234567"`
	Password string `json:"password" example:"secret123"`
	Role     string `json:"role" example:"passenger" enums:"passenger,driver"`
	FullName string `json:"full_name" example:"Ivan Petrov"`
}

type LoginRequestDTO struct {
	Phone    string `json:"phone" example:"+79991234567"`
	Password string `json:"password" example:"secret123"`
}

type AdminLoginRequestDTO struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"admin"`
}

type AuthResponseDTO struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id" example:"1"`
	Role    string `json:"role" example:"passenger"`
}
