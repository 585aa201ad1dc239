package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
)

func (s *Server) ListVehicles(c *gin.Context) {
	var query vehicledomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vehicleSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVehicle(c *gin.Context) {
	var vehicle vehicledomain.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.vehicleSvc.Create(c.Request.Context(), vehicle)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetVehicle(c *gin.Context) {
	vehicle, err := s.vehicleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

func (s *Server) UpdateVehicle(c *gin.Context) {
	var vehicle vehicledomain.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	vehicle.ID = c.Param("id")

	updated, err := s.vehicleSvc.Update(c.Request.Context(), vehicle)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteVehicle(c *gin.Context) {
	if err := s.vehicleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
