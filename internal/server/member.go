package server

import (
	"net/http"
	"strings"

	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	"github.com/gin-gonic/gin"
)

type registerMemberRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	TravelPreferences []string `json:"travel_preferences"`
}

func (s *Server) RegisterMember(c *gin.Context) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.memberSvc.Register(c.Request.Context(), memberdomain.RegisterRequest{
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.TrimSpace(req.Email),
		TravelPreferences: req.TravelPreferences,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMember(c *gin.Context) {
	resp, err := s.memberSvc.Get(c.Request.Context(), memberdomain.GetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
