package server

import (
	"net/http"
	"strings"

	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/gin-gonic/gin"
)

// ListPartners serves the partner catalog, optionally narrowed by category.
// Partners are read-only reference data, so the handler reads through the
// facade directly rather than a dedicated service.
func (s *Server) ListPartners(c *gin.Context) {
	b := s.db.From(store.TablePartners)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		b = b.Eq("category", category)
	}

	rows, err := b.Order("name", true).Rows()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	partners, err := query.DecodeRows[partnerdomain.Partner](rows)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": partners})
}
