package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	workerdomain "github.com/abdouni493/auto-rental-application/internal/worker/domain"
)

func (s *Server) ListWorkers(c *gin.Context) {
	workers, err := s.workerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workers})
}

func (s *Server) CreateWorker(c *gin.Context) {
	var worker workerdomain.Worker
	if err := c.ShouldBindJSON(&worker); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.workerSvc.Create(c.Request.Context(), worker)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) GetWorker(c *gin.Context) {
	worker, err := s.workerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": worker})
}

func (s *Server) UpdateWorker(c *gin.Context) {
	var worker workerdomain.Worker
	if err := c.ShouldBindJSON(&worker); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	worker.ID = c.Param("id")

	updated, err := s.workerSvc.Update(c.Request.Context(), worker)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (s *Server) DeleteWorker(c *gin.Context) {
	if err := s.workerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListWorkerPayments(c *gin.Context) {
	payments, err := s.workerSvc.Payments(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments})
}

func (s *Server) AddWorkerPayment(c *gin.Context) {
	var payment workerdomain.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	payment.WorkerID = c.Param("id")

	created, err := s.workerSvc.AddPayment(c.Request.Context(), payment)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": created})
}
