package dto

type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"omitempty,max=120"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin bendahara editor pengajar"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=120"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin bendahara editor pengajar"`
	IsActive *bool   `json:"is_active"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
