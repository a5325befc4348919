package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"guesthouse-backend/config"
	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type rolePermissionsPayload struct {
	Permissions []string `json:"permissions"`
}

type roleMemberResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

var defaultActionsByModule = map[string][]string{
	"bookingManagement":   {"view", "create", "edit", "delete"},
	"roomManagement":      {"view", "create", "edit", "delete"},
	"paymentManagement":   {"view", "edit"},
	"reports":             {"view"},
	"documents":           {"view"},
	"rolesAndPermissions": {"view", "create", "edit", "delete"},
	"settings":            {"view", "edit"},
	"adminManagement":     {"view", "create", "delete"},
}

func buildDefaultPermissions() map[string]map[string]bool {
	permMap := map[string]map[string]bool{}
	for module, actions := range defaultActionsByModule {
		permMap[module] = map[string]bool{}
		for _, action := range actions {
			permMap[module][action] = false
		}
	}
	return permMap
}

type roleResponse struct {
	ID          uint                       `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Permissions map[string]map[string]bool `json:"permissions"`
	Members     []roleMemberResponse       `json:"members"`
}

// GetRoles returns the full role/permission matrix. The client renders this
// snapshot only; the table stays the source of truth.
func GetRoles(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Preload("Permissions").Preload("Members").Find(&roles).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		permMap := buildDefaultPermissions()
		for _, perm := range role.Permissions {
			parts := strings.Split(perm.Permission, ".")
			if len(parts) != 2 {
				continue
			}
			module, action := parts[0], parts[1]
			if _, ok := permMap[module]; !ok {
				permMap[module] = map[string]bool{}
			}
			permMap[module][action] = true
		}

		members := make([]roleMemberResponse, 0, len(role.Members))
		for _, admin := range role.Members {
			members = append(members, roleMemberResponse{ID: admin.ID, Name: admin.FullName})
		}

		responses = append(responses, roleResponse{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permMap,
			Members:     members,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"roles": responses})
}

// UpdateRolePermissions replaces a role's permission set atomically.
func UpdateRolePermissions(c *gin.Context) {
	roleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid role id")
		return
	}

	var payload rolePermissionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var role models.Role
	if err := config.DB.First(&role, roleID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "role not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		perms := make([]models.RolePermission, 0, len(payload.Permissions))
		for _, p := range payload.Permissions {
			p = strings.TrimSpace(p)
			if p == "" || !strings.Contains(p, ".") {
				continue
			}
			perms = append(perms, models.RolePermission{RoleID: role.ID, Permission: p})
		}
		if len(perms) > 0 {
			if err := tx.Create(&perms).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update permissions")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": true})
}
