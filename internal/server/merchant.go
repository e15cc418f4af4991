package server

import (
	"net/http"
	"strings"

	bookingdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/booking/domain"
	"github.com/gin-gonic/gin"
)

type openSessionRequest struct {
	PartnerID string `json:"partner_id"`
}

// OpenMerchantSession records the active merchant session in the store so it
// survives restarts with the snapshot, mirroring the portal's sign-in.
func (s *Server) OpenMerchantSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PartnerID) == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	sess := s.store.SetSession(strings.TrimSpace(req.PartnerID))
	c.JSON(http.StatusOK, gin.H{"data": sess})
}

func (s *Server) GetMerchantSession(c *gin.Context) {
	sess, ok := s.store.Session()
	if !ok {
		AbortWithError(c, ErrNoSession)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sess})
}

func (s *Server) CloseMerchantSession(c *gin.Context) {
	s.store.ClearSession()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}

// sessionPartnerID resolves the signed-in partner, failing the request when no
// merchant session is active.
func (s *Server) sessionPartnerID(c *gin.Context) (string, bool) {
	sess, ok := s.store.Session()
	if !ok {
		AbortWithError(c, ErrNoSession)
		return "", false
	}
	return sess.PartnerID, true
}

// MerchantBookings is the dashboard listing: the signed-in partner's bookings,
// optionally narrowed by status.
func (s *Server) MerchantBookings(c *gin.Context) {
	partnerID, ok := s.sessionPartnerID(c)
	if !ok {
		return
	}

	resp, err := s.bookingSvc.ListWithPartners(c.Request.Context(), bookingdomain.ListRequest{
		PartnerID: partnerID,
		Status:    bookingdomain.Status(strings.TrimSpace(c.Query("status"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AcceptBooking(c *gin.Context) {
	if _, ok := s.sessionPartnerID(c); !ok {
		return
	}

	resp, err := s.bookingSvc.Accept(c.Request.Context(), bookingdomain.AcceptRequest{
		BookingID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type declineBookingRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) DeclineBooking(c *gin.Context) {
	if _, ok := s.sessionPartnerID(c); !ok {
		return
	}

	var req declineBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.Decline(c.Request.Context(), bookingdomain.DeclineRequest{
		BookingID: strings.TrimSpace(c.Param("id")),
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type sendCounterOfferRequest struct {
	ProposedDetails *bookingdomain.Details `json:"proposed_details"`
	ProposedPrice   *float64               `json:"proposed_price"`
	Message         string                 `json:"message"`
}

func (s *Server) SendCounterOffer(c *gin.Context) {
	if _, ok := s.sessionPartnerID(c); !ok {
		return
	}

	var req sendCounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.bookingSvc.SendCounterOffer(c.Request.Context(), bookingdomain.SendCounterOfferRequest{
		BookingID:       strings.TrimSpace(c.Param("id")),
		ProposedDetails: req.ProposedDetails,
		ProposedPrice:   req.ProposedPrice,
		Message:         strings.TrimSpace(req.Message),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CheckInBooking completes a confirmed booking, the QR scan path on the
// merchant dashboard.
func (s *Server) CheckInBooking(c *gin.Context) {
	if _, ok := s.sessionPartnerID(c); !ok {
		return
	}

	resp, err := s.bookingSvc.CheckIn(c.Request.Context(), bookingdomain.CheckInRequest{
		BookingID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MerchantPayout(c *gin.Context) {
	partnerID, ok := s.sessionPartnerID(c)
	if !ok {
		return
	}

	resp, err := s.bookingSvc.Payout(c.Request.Context(), bookingdomain.PayoutRequest{
		PartnerID: partnerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
