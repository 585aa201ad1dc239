package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/abdouni493/auto-rental-application/internal/customer/domain"
)

func (s *Server) ListCustomers(c *gin.Context) {
	var query customerdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var customer customerdomain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.customerSvc.Create(c.Request.Context(), customer)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetCustomer(c *gin.Context) {
	customer, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var customer customerdomain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	customer.ID = c.Param("id")

	updated, err := s.customerSvc.Update(c.Request.Context(), customer)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
