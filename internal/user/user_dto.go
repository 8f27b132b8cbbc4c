package user

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=30"`
	LastName  string `json:"last_name" binding:"required,max=30"`
	Role      string `json:"role" binding:"required,oneof=ADMIN RH SG"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=30"`
	LastName  string `json:"last_name" binding:"omitempty,max=30"`
	Role      string `json:"role" binding:"omitempty,oneof=ADMIN RH SG"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// CreatedUserResponse carries the generated password exactly once, in
// the create response. It is never retrievable again.
type CreatedUserResponse struct {
	UserResponse
	TempPassword string `json:"temp_password"`
}
