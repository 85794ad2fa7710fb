package usecase

type RegisterInput struct {
	Email     string `json:"email" form:"email" validate:"required,email"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=50"`
	Gender    string `json:"gender" form:"gender" validate:"required,oneof=M F"`
	Password  string `json:"password" form:"password" validate:"required,strongpassword"`
}

type RegisterOutput struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginOutput struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type ActivateOutput struct {
	Message string `json:"message"`
}
