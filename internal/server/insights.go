package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdouni493/auto-rental-application/internal/insights"
)

func (s *Server) AnalyzeInsights(c *gin.Context) {
	var req insights.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	answer, err := s.insightsSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"answer": answer}})
}
