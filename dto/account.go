package dto

// RegisterRequest creates an account. Password rules: at least 6 characters,
// at most 72 bytes, and one each of digit, lower case, upper case and symbol.
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required,notblank,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

func (r RegisterRequest) Validate() FieldErrors {
	return validateStruct(r)
}

type LoginRequest struct {
	UserName string `json:"userName" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() FieldErrors {
	return validateStruct(r)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required,notblank"`
}

func (r RefreshRequest) Validate() FieldErrors {
	return validateStruct(r)
}

// NewUserResponse is returned by register, login and refresh.
type NewUserResponse struct {
	UserName     string `json:"userName"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
