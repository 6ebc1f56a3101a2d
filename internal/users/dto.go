package users

// CreateUserRequest carries the fields of a new account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall= "`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// UpdateUserRequest carries an administrative edit. Nil fields are unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50,excludesall= "`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Role     *string `json:"role,omitempty" validate:"omitempty,min=1"`
	Password *string `json:"password,omitempty" validate:"omitempty,strong_password"`
}

// UpdateProfileRequest carries a self-service edit.
type UpdateProfileRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}
