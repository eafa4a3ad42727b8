package controllers

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muthuvelan/orderdeskbackend/dto"
	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/utils"
)

const otpTTL = 5 * time.Minute

// POST /auth/login
// Admin email/password login.
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		user, err := a.Accounts.FindUserByEmail(ctx, body.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(utils.Claims{
			UserID: user.Id,
			Email:  user.Email,
			Role:   string(user.Role),
		}, utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user.Id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate refresh token"})
			return
		}

		now := time.Now().UTC()
		err = a.Accounts.InsertRefreshToken(ctx, &models.RefreshToken{
			Id:        uuid.NewString(),
			UserId:    user.Id,
			TokenHash: refreshToken,
			ExpiresAt: now.Add(utils.RefreshTTL()),
			CreatedAt: now,
		})
		if err != nil {
			log.Print("storing refresh token failed: ", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     "refreshToken",
			Value:    refreshToken,
			Path:     "/auth/refresh",
			MaxAge:   int(utils.RefreshTTL().Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode, // for cross-site
		})
		c.JSON(http.StatusOK, gin.H{
			"access_token": accessToken,
		})
	}
}

// POST /auth/refresh
// Rotates the refresh token and returns a fresh access token.
func (a *App) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		hash, err := c.Cookie("refreshToken")
		if err != nil || hash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}

		now := time.Now().UTC()
		rt, err := a.Accounts.FindActiveRefreshToken(ctx, hash, now)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		user, err := a.Accounts.FindUserById(ctx, rt.UserId)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		newHash, err := utils.GenerateRefreshToken(user.Id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
			return
		}
		if err := a.Accounts.RevokeRefreshToken(ctx, rt.Id, now, newHash); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke refresh token"})
			return
		}
		err = a.Accounts.InsertRefreshToken(ctx, &models.RefreshToken{
			Id:        uuid.NewString(),
			UserId:    user.Id,
			TokenHash: newHash,
			ExpiresAt: now.Add(utils.RefreshTTL()),
			CreatedAt: now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(utils.Claims{
			UserID: user.Id,
			Email:  user.Email,
			Role:   string(user.Role),
		}, utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     "refreshToken",
			Value:    newHash,
			Path:     "/auth/refresh",
			MaxAge:   int(utils.RefreshTTL().Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
		c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
	}
}

// POST /auth/request-otp
// Client login step one. The OTP is never returned in production; it is
// logged for the operator to relay.
func (a *App) RequestOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RequestOTPDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		debugCode := os.Getenv("OTP_DEBUG_CODE")
		code := debugCode
		if code == "" {
			n, err := rand.Int(rand.Reader, big.NewInt(10000))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate otp"})
				return
			}
			code = fmt.Sprintf("%04d", n.Int64())
		}

		now := time.Now().UTC()
		err := a.Accounts.InsertOTPSession(c.Request.Context(), &models.OTPSession{
			Id:        uuid.NewString(),
			Mobile:    body.Mobile,
			Code:      code,
			ExpiresAt: now.Add(otpTTL),
			CreatedAt: now,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		log.Printf("OTP generated mobile=%s otp=%s", body.Mobile, code)

		resp := gin.H{"message": "OTP sent"}
		if debugCode != "" {
			resp["debug_otp"] = code
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /auth/verify-otp
// Client login step two: consumes the OTP, resolves or registers the
// client and hands out a client token.
func (a *App) VerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.VerifyOTPDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		now := time.Now().UTC()
		if err := a.Accounts.ConsumeOTPSession(ctx, body.Mobile, body.OTP, now); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired OTP"})
			return
		}

		client, err := a.Accounts.FindClientByMobile(ctx, body.Mobile)
		if err != nil {
			name := body.Name
			if name == "" {
				name = "Client"
			}
			client = &models.Client{
				Id:         fmt.Sprintf("CLI-%d", now.UnixMilli()),
				Name:       name,
				Mobile:     body.Mobile,
				IsApproved: true,
				CreatedAt:  now,
			}
			if err := a.Accounts.InsertClient(ctx, client); err != nil {
				respondError(c, err)
				return
			}
		}

		token, err := utils.GenerateAccessToken(utils.Claims{
			UserID: client.Id,
			Name:   client.Name,
			Mobile: client.Mobile,
			Role:   string(models.RoleClient),
		}, utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":     client.Id,
				"name":   client.Name,
				"role":   "client",
				"mobile": client.Mobile,
			},
		})
	}
}
