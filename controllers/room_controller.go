package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Availability *services.AvailabilityService
}

func NewRoomController(availability *services.AvailabilityService) *RoomController {
	return &RoomController{Availability: availability}
}

// parseDateParam accepts ISO-8601 timestamps or plain dates.
func parseDateParam(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// ----------------------------------------------------
// 1. List Rooms (GET /api/rooms?check_in=&check_out=)
// ----------------------------------------------------
//
// With both dates: the catalog filtered to free units plus per-type free
// counts. Without dates: the full customer-visible catalog.

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	checkIn := parseDateParam(c.Query("check_in"))
	checkOut := parseDateParam(c.Query("check_out"))

	if checkIn == nil && checkOut == nil {
		rooms, err := ctrl.Availability.Catalog()
		if err != nil {
			log.Printf("catalog load failed: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"rooms": rooms})
		return
	}

	result, err := ctrl.Availability.CheckAvailability(checkIn, checkOut)
	if err != nil {
		log.Printf("availability check failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to check availability")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/admin/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room

	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("room payload binding error: %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "Room Number is required.")
		return
	}
	if strings.TrimSpace(room.RoomType) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Room Type is required.")
		return
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") || strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("Room Number '%s' already exists.", room.RoomNumber))
			return
		}
		log.Printf("room create DB error: %v", result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Room (PUT /api/admin/rooms/:id)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	// Protect immutable fields
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("update error for room %s: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "Update failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room updated successfully"})
}

// ----------------------------------------------------
// 4. Delete Room (DELETE /api/admin/rooms/:id)
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		log.Printf("DB error deleting room %s: %v", id, result.Error)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete room.")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("Room with ID %s not found.", id))
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// ----------------------------------------------------
// 5. Admin room listing (GET /api/admin/rooms)
// ----------------------------------------------------

func GetAllRooms(c *gin.Context) {
	var rooms []models.Room
	if err := config.DB.Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"rooms": rooms})
}
