package dto

// RegisterForm is the form body for POST /users/registered.
type RegisterForm struct {
	Username  string `form:"username"`
	FirstName string `form:"first"`
	LastName  string `form:"last"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

// LoginForm is the form body for POST /users/loggedin.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
