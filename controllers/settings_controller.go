package controllers

import (
	"errors"
	"net/http"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type settingsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Logo    string `json:"logo"`
}

func GetSettings(c *gin.Context) {
	var setting models.GuestHouseSetting
	if err := config.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONSuccess(c, http.StatusOK, gin.H{"settings": models.GuestHouseSetting{}})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"settings": setting})
}

func UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var setting models.GuestHouseSetting
	err := config.DB.First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
			return
		}
		setting = models.GuestHouseSetting{
			Name:    payload.Name,
			Address: payload.Address,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Website: payload.Website,
			Logo:    payload.Logo,
		}
		if err := config.DB.Create(&setting).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"settings": setting})
		return
	}

	updates := map[string]interface{}{
		"name":    payload.Name,
		"address": payload.Address,
		"phone":   payload.Phone,
		"email":   payload.Email,
		"website": payload.Website,
		"logo":    payload.Logo,
	}
	if err := config.DB.Model(&setting).Updates(updates).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"settings": setting})
}
