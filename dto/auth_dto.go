package dto

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RequestOTPDTO struct {
	Mobile string `json:"mobile" binding:"required"`
	Name   string `json:"name"`
}

type VerifyOTPDTO struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
	Name   string `json:"name"`
}
