package controllers

import (
	"errors"
	"net/http"

	"guesthouse-backend/middleware"
	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

type cartUpdatePayload struct {
	RoomID   uint                   `json:"roomId" binding:"required"`
	Delta    int                    `json:"delta" binding:"required"`
	Snapshot *services.RoomSnapshot `json:"snapshot,omitempty"`
}

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// GetCart returns the session's current selection.
func (ctrl *CartController) GetCart(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	cart, err := ctrl.Cart.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load cart")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entries": services.Entries(cart)})
}

// UpdateCart applies a quantity delta. The first add of a room must carry
// the pricing snapshot.
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	var payload cartUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	sessionID := c.GetString(middleware.CtxSessionID)
	cart, err := ctrl.Cart.UpdateCart(c.Request.Context(), sessionID, payload.RoomID, payload.Delta, payload.Snapshot)
	if err != nil {
		if errors.Is(err, services.ErrSnapshotRequired) {
			utils.JSONError(c, http.StatusBadRequest, "room details are required when adding a room for the first time")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update cart")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"entries": services.Entries(cart)})
}

// ClearCart empties the selection.
func (ctrl *CartController) ClearCart(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	if err := ctrl.Cart.ClearCart(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to clear cart")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"cleared": true})
}
