package server

import (
	"net/http"
	"strings"

	bookingdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	UserID      string                `json:"user_id"`
	PartnerID   string                `json:"partner_id"`
	Details     bookingdomain.Details `json:"details"`
	TotalAmount float64               `json:"total_amount"`
}

func (s *Server) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.Create(c.Request.Context(), bookingdomain.CreateRequest{
		UserID:      strings.TrimSpace(req.UserID),
		PartnerID:   strings.TrimSpace(req.PartnerID),
		Details:     req.Details,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBookings(c *gin.Context) {
	var query struct {
		UserID string `form:"user_id"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.ListWithPartners(c.Request.Context(), bookingdomain.ListRequest{
		UserID: strings.TrimSpace(query.UserID),
		Status: bookingdomain.Status(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Get(c.Request.Context(), bookingdomain.GetRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

func (s *Server) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.Cancel(c.Request.Context(), bookingdomain.CancelRequest{
		BookingID: strings.TrimSpace(c.Param("id")),
		Reason:    strings.TrimSpace(req.Reason),
		Note:      strings.TrimSpace(req.Note),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AcceptCounterOffer(c *gin.Context) {
	resp, err := s.bookingSvc.AcceptCounterOffer(c.Request.Context(), bookingdomain.AcceptCounterOfferRequest{
		OfferID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeclineCounterOffer(c *gin.Context) {
	resp, err := s.bookingSvc.DeclineCounterOffer(c.Request.Context(), bookingdomain.DeclineCounterOfferRequest{
		OfferID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
