package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_board/internal/config"
	"fleet_board/internal/middleware"
	"fleet_board/internal/models"
	"fleet_board/internal/saga"
)

// NormalizeHandle reduces a vehicle uid to the local part of its device
// email: non-alphanumerics stripped, case folded. "AB-12!" -> "ab12".
func NormalizeHandle(uid string) string {
	var b strings.Builder
	for _, r := range uid {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func deviceEmailFor(uid string) string {
	domain := config.GetEnv("DEVICE_EMAIL_DOMAIN", "device.fleet.local")
	return NormalizeHandle(uid) + "@" + domain
}

type createUserInput struct {
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required"`
	Role              string `json:"role" binding:"required"`
	AssignedTOB       string `json:"assigned_tob"`
	AssignedVehicleID *uint  `json:"assigned_vehicle_id"`
}

// CreateManagedUser creates a credential plus its profile. The two writes
// are deliberately not wrapped in a transaction: when the profile insert
// fails the credential stays behind, and the caller is told so explicitly
// instead of pretending nothing happened.
func CreateManagedUser(c *gin.Context) {
	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if input.Role == models.RoleSuperAdmin && middleware.CurrentSession(c).Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only a super_admin may create super_admin accounts"})
		return
	}
	if input.Role == models.RoleTobAdmin && input.AssignedTOB == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_tob is required for tob_admin"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{Email: input.Email, Password: hashed}
	if err := config.DB.Create(&user).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	profile := models.Profile{
		UserID:            user.ID,
		Role:              input.Role,
		AssignedTOB:       input.AssignedTOB,
		AssignedVehicleID: input.AssignedVehicleID,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		logrus.WithError(err).Errorf("profile creation failed for user %d; credential left in place", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "The credential was created but its profile could not be: " + err.Error(),
			"user_id": user.ID,
		})
		return
	}
	user.Profile = &profile

	c.JSON(http.StatusCreated, gin.H{"user": prepareUserResponse(user)})
}

// ResetUserPassword sets a new password on an existing credential.
func ResetUserPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := hashPassword(body.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", id).Update("password", hashed)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset password: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

// DeleteManagedUser revokes access by removing the credential; the
// profile goes with it via the FK cascade.
func DeleteManagedUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if id == middleware.CurrentSession(c).UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot delete your own account"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}
	if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete profile: " + err.Error()})
		return
	}
	result := tx.Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ListManagedUsers lists credentials with their profiles.
func ListManagedUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Profile").Order("email ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users: " + err.Error()})
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, prepareUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

type provisionVehicleInput struct {
	UID                   string `json:"uid" binding:"required"`
	VehicleTypeID         uint   `json:"vehicle_type_id" binding:"required"`
	LocationID            uint   `json:"location_id" binding:"required"`
	VehicleStatusID       uint   `json:"vehicle_status_id" binding:"required"`
	OperationalCategoryID uint   `json:"operational_category_id" binding:"required"`
	Mileage               int    `json:"mileage"`
}

// ProvisionVehicle creates a vehicle together with its synthetic device
// credential as a saga: credential, vehicle, profile, in that order, with
// compensations deleting in reverse on any failure. The generated
// password is returned exactly once.
func ProvisionVehicle(c *gin.Context) {
	var input provisionVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handle := NormalizeHandle(input.UID)
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle uid contains no usable characters"})
		return
	}

	password := uuid.NewString()
	hashed, err := hashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{Email: deviceEmailFor(input.UID), Password: hashed}
	vehicle := models.Vehicle{
		UID:                   input.UID,
		VehicleTypeID:         input.VehicleTypeID,
		LocationID:            input.LocationID,
		VehicleStatusID:       input.VehicleStatusID,
		OperationalCategoryID: input.OperationalCategoryID,
		Mileage:               input.Mileage,
		StatusChangedAt:       time.Now(),
	}

	err = saga.Execute([]saga.Step{
		{
			Name: "create device credential",
			Run: func() error {
				if err := config.DB.Create(&user).Error; err != nil {
					if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
						return errors.New("a device credential for this uid already exists")
					}
					return err
				}
				return nil
			},
			Compensate: func() error {
				return config.DB.Unscoped().Delete(&models.User{}, user.ID).Error
			},
		},
		{
			Name: "create vehicle",
			Run: func() error {
				vehicle.DeviceUserID = &user.ID
				return config.DB.Create(&vehicle).Error
			},
			Compensate: func() error {
				return config.DB.Unscoped().Delete(&models.Vehicle{}, vehicle.ID).Error
			},
		},
		{
			Name: "create device profile",
			Run: func() error {
				profile := models.Profile{
					UserID:            user.ID,
					Role:              models.RoleVehicleUser,
					AssignedVehicleID: &vehicle.ID,
				}
				return config.DB.Create(&profile).Error
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "vehicle provisioning failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"vehicle":         vehicle,
		"device_email":    user.Email,
		"device_password": password,
	})
}

// MintDeviceToken issues the short-lived QR login token for a vehicle's
// device account.
func MintDeviceToken(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}
	if vehicle.DeviceUserID == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This vehicle has no device credential; provision one first"})
		return
	}

	token, err := middleware.GenerateDeviceToken(*vehicle.DeviceUserID, vehicle.ID, 10*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"device_token": token,
		"expires_in":   int((10 * time.Minute).Seconds()),
	})
}

// DeleteVehicleCascade hard-deletes a vehicle and everything hanging off
// it: maintenance logs, the device profile and the device credential.
func DeleteVehicleCascade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}
	if err := tx.Unscoped().Where("vehicle_id = ?", vehicle.ID).Delete(&models.MaintenanceLog{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete maintenance logs: " + err.Error()})
		return
	}
	if err := tx.Unscoped().Delete(&models.Vehicle{}, vehicle.ID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete vehicle: " + err.Error()})
		return
	}
	if vehicle.DeviceUserID != nil {
		if err := tx.Unscoped().Where("user_id = ?", *vehicle.DeviceUserID).Delete(&models.Profile{}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete device profile: " + err.Error()})
			return
		}
		if err := tx.Unscoped().Delete(&models.User{}, *vehicle.DeviceUserID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete device credential: " + err.Error()})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle and dependents deleted"})
}
