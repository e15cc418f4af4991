package server

import (
	"net/http"
	"strings"

	notificationdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/notification/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListNotifications(c *gin.Context) {
	var query struct {
		UserID     string `form:"user_id"`
		PartnerID  string `form:"partner_id"`
		UnreadOnly bool   `form:"unread_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.notificationSvc.List(c.Request.Context(), notificationdomain.ListRequest{
		UserID:     strings.TrimSpace(query.UserID),
		PartnerID:  strings.TrimSpace(query.PartnerID),
		UnreadOnly: query.UnreadOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	resp, err := s.notificationSvc.MarkRead(c.Request.Context(), notificationdomain.MarkReadRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
