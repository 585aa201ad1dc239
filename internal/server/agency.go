package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	agencydomain "github.com/abdouni493/auto-rental-application/internal/agency/domain"
)

func (s *Server) ListAgencies(c *gin.Context) {
	agencies, err := s.agencySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agencies})
}

func (s *Server) CreateAgency(c *gin.Context) {
	var agency agencydomain.Agency
	if err := c.ShouldBindJSON(&agency); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.agencySvc.Create(c.Request.Context(), agency)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetAgency(c *gin.Context) {
	agency, err := s.agencySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agency})
}

func (s *Server) UpdateAgency(c *gin.Context) {
	var agency agencydomain.Agency
	if err := c.ShouldBindJSON(&agency); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	agency.ID = c.Param("id")

	updated, err := s.agencySvc.Update(c.Request.Context(), agency)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteAgency(c *gin.Context) {
	if err := s.agencySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
