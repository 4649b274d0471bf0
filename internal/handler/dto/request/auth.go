package request

type LoginRequest struct {
	Subject  string `json:"subject" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}
