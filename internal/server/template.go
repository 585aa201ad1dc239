package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
)

func (s *Server) ListTemplates(c *gin.Context) {
	var query templatedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var (
		templates []templatedomain.Template
		err       error
	)
	if query.Category != "" && query.Name == "" {
		templates, err = s.templateSvc.ListByCategory(c.Request.Context(), query.Category)
	} else {
		templates, err = s.templateSvc.List(c.Request.Context(), query)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": templates})
}

func (s *Server) GetTemplate(c *gin.Context) {
	tpl, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tpl})
}

// SaveTemplate handles both create and update: the store replaces by id.
// The response is the full catalog so the designer's template list
// refreshes in one round trip.
func (s *Server) SaveTemplate(c *gin.Context) {
	var tpl templatedomain.Template
	if err := c.ShouldBindJSON(&tpl); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if id := c.Param("id"); id != "" {
		tpl.ID = id
	}

	_, catalog, err := s.templateSvc.Upsert(c.Request.Context(), tpl)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog})
}

func (s *Server) DeleteTemplate(c *gin.Context) {
	catalog, err := s.templateSvc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog})
}

// PreviewTemplate renders a template against a reservation, or against
// an empty record when no reservation is given, and returns the page as
// HTML. The designer's preview pane and the print modals both use it.
func (s *Server) PreviewTemplate(c *gin.Context) {
	tpl, err := s.templateSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.documentData(c.Request.Context(), c.Query("reservation_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	page, err := s.renderDocument(*tpl, data, "preview")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
