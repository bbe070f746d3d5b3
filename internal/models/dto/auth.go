package dto

// SignupForm mirrors the signup form fields. ConfirmPassword is compared
// and discarded, never stored.
type SignupForm struct {
	Username           string `form:"username" json:"username"`
	Email              string `form:"email" json:"email"`
	Password           string `form:"password" json:"password"`
	ConfirmPassword    string `form:"confirmPassword" json:"confirmPassword"`
	PhoneForWithdrawal string `form:"phoneForWithdrawal" json:"phoneForWithdrawal"`
}

// LoginForm mirrors the login form fields. Email is the only accepted
// identifier.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}
