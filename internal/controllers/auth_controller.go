package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
)

type signupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`

	AssignedTOB string `json:"assigned_tob"`
}

// SignupUser registers a credential and implicitly creates its profile.
// Only super_admin may be self-claimed, and only while the database holds
// no super_admin yet (first-run bootstrap); everything else defaults to
// the lowest role until an administrator upgrades the profile.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := resolveSignupRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user := models.User{Email: input.Email, Password: hashedPassword}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	profile := models.Profile{UserID: user.ID, Role: role, AssignedTOB: input.AssignedTOB}
	if err := tx.Create(&profile).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile: " + err.Error()})
		return
	}
	user.Profile = &profile

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).Preload("Profile")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	role := ""
	if user.Profile != nil {
		role = user.Profile.Role
	}
	token, err := middleware.GenerateToken(user.ID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// DeviceLogin exchanges a short-lived device token (from a vehicle's QR
// code) for a normal session token. Plaintext credentials never transit
// the QR payload.
func DeviceLogin(c *gin.Context) {
	var body struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, vehicleID, err := middleware.ParseDeviceToken(body.DeviceToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "device account no longer exists"})
		return
	}
	if user.Profile == nil || user.Profile.Role != models.RoleVehicleUser ||
		user.Profile.AssignedVehicleID == nil || *user.Profile.AssignedVehicleID != vehicleID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "device token does not match a vehicle account"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user":       prepareUserResponse(user),
		"vehicle_id": vehicleID,
	})
}

func resolveSignupRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleVehicleUser
	}
	if !models.ValidRole(role) {
		return "", errors.New("invalid role")
	}
	if role == models.RoleSuperAdmin {
		var n int64
		config.DB.Model(&models.Profile{}).Where("role = ?", models.RoleSuperAdmin).Count(&n)
		if n > 0 {
			return "", errors.New("super_admin accounts are provisioned by an existing super_admin")
		}
		return role, nil
	}
	if role == models.RoleAdmin || role == models.RoleTobAdmin {
		return "", errors.New("admin accounts are provisioned by an administrator")
	}
	return role, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"email":     user.Email,
	}

	if user.Profile != nil {
		responseUser["role"] = user.Profile.Role
		if user.Profile.AssignedTOB != "" {
			responseUser["assigned_tob"] = user.Profile.AssignedTOB
		}
		if user.Profile.AssignedVehicleID != nil {
			responseUser["assigned_vehicle_id"] = *user.Profile.AssignedVehicleID
		}
	}
	return responseUser
}
