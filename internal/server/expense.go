package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	expensedomain "github.com/abdouni493/auto-rental-application/internal/expense/domain"
)

func (s *Server) ListExpenses(c *gin.Context) {
	var query expensedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	expenses, err := s.expenseSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": expenses})
}

func (s *Server) CreateExpense(c *gin.Context) {
	var expense expensedomain.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.expenseSvc.Create(c.Request.Context(), expense)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) DeleteExpense(c *gin.Context) {
	if err := s.expenseSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
