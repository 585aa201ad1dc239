package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
)

func (s *Server) ListReservations(c *gin.Context) {
	var query reservationdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reservationSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateReservation(c *gin.Context) {
	var reservation reservationdomain.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.reservationSvc.Create(c.Request.Context(), reservation)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetReservation(c *gin.Context) {
	reservation, err := s.reservationSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservation})
}

func (s *Server) UpdateReservation(c *gin.Context) {
	var reservation reservationdomain.Reservation
	if err := c.ShouldBindJSON(&reservation); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	reservation.ID = c.Param("id")

	updated, err := s.reservationSvc.Update(c.Request.Context(), reservation)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) ConfirmReservation(c *gin.Context) {
	reservation, err := s.reservationSvc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservation})
}

func (s *Server) ActivateReservation(c *gin.Context) {
	var handOver reservationdomain.HandOver
	if err := c.ShouldBindJSON(&handOver); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reservation, err := s.reservationSvc.Activate(c.Request.Context(), c.Param("id"), handOver)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservation})
}

func (s *Server) TerminateReservation(c *gin.Context) {
	var handOver reservationdomain.HandOver
	if err := c.ShouldBindJSON(&handOver); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reservation, err := s.reservationSvc.Terminate(c.Request.Context(), c.Param("id"), handOver)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservation})
}

func (s *Server) CancelReservation(c *gin.Context) {
	reservation, err := s.reservationSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservation})
}

func (s *Server) ReservationLogs(c *gin.Context) {
	logs, err := s.reservationSvc.Logs(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func (s *Server) RevenueStats(c *gin.Context) {
	stats, err := s.reservationSvc.RevenueStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
