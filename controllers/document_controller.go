package controllers

import (
	"io"
	"log"
	"net/http"
	"time"

	"guesthouse-backend/services"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

const signedURLTTL = 15 * time.Minute

type signDocumentPayload struct {
	Path string `json:"path" binding:"required"`
}

type DocumentController struct {
	Docs services.DocumentStore
}

func NewDocumentController(docs services.DocumentStore) *DocumentController {
	return &DocumentController{Docs: docs}
}

// SignDocument exchanges a stored document path for a time-limited view URL
// (admin booking detail views).
func (ctrl *DocumentController) SignDocument(c *gin.Context) {
	var payload signDocumentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "path required")
		return
	}

	query := utils.SignDocumentPath(payload.Path, signedURLTTL)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"url":        "/api/documents/view?" + query,
		"expires_in": int(signedURLTTL.Seconds()),
	})
}

// ViewDocument streams a document after validating the signature and expiry.
// This is the only way a stored document leaves the server.
func (ctrl *DocumentController) ViewDocument(c *gin.Context) {
	path := c.Query("path")
	exp := c.Query("exp")
	sig := c.Query("sig")

	if !utils.VerifyDocumentSignature(path, exp, sig) {
		utils.JSONError(c, http.StatusForbidden, "link invalid or expired")
		return
	}

	reader, err := ctrl.Docs.Open(c.Request.Context(), path)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "document not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Printf("document stream failed: %v", err)
	}
}
