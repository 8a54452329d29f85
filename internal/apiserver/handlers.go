package apiserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// submitRequest is the JSON body for POST /jobs.
type submitRequest struct {
	GridText       string `json:"gridText" binding:"required"`
	DictionaryName string `json:"dictionaryName" binding:"required"`
}

// jobResponse is the JSON shape returned for both submission and
// polling.
type jobResponse struct {
	ID                 string `json:"id"`
	Status             Status `json:"status"`
	DictionaryName     string `json:"dictionaryName"`
	ResultText         string `json:"resultText,omitempty"`
	Error              string `json:"error,omitempty"`
	CandidatesExplored int    `json:"candidatesExplored,omitempty"`
}

func toJobResponse(job Job) jobResponse {
	return jobResponse{
		ID:                 job.ID,
		Status:             job.Status,
		DictionaryName:     job.DictionaryName,
		ResultText:         job.ResultText,
		Error:              job.ErrorMessage,
		CandidatesExplored: job.CandidatesExplored,
	}
}

// handleSubmit creates a queued fill job and enqueues it for a worker.
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &Job{
		ID:             newJobID(),
		DictionaryName: req.DictionaryName,
		Status:         StatusQueued,
		GridText:       req.GridText,
		CreatedAt:      time.Now(),
	}

	if err := s.store.Create(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	select {
	case s.jobs <- job.ID:
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "job queue is full, try again shortly"})
		return
	}

	c.JSON(http.StatusAccepted, toJobResponse(*job))
}

// handleGet polls a job's current state.
func (s *Server) handleGet(c *gin.Context) {
	id := c.Param("id")
	job, ok, err := s.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, toJobResponse(job))
}

// handleSubscribe upgrades to a websocket that receives exactly one
// message - the job's completion event - then closes. If the job has
// already completed by the time the client subscribes, it is told
// immediately instead of being left to wait for an event that already
// happened.
func (s *Server) handleSubscribe(c *gin.Context) {
	id := c.Param("id")
	job, ok, err := s.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	var immediate *CompletionEvent
	if job.Status == StatusSucceeded || job.Status == StatusFailed {
		immediate = &CompletionEvent{
			JobID:      job.ID,
			Status:     job.Status,
			ResultText: job.ResultText,
			Error:      job.ErrorMessage,
		}
	}

	if err := ServeWs(s.notifier, c.Writer, c.Request, id, immediate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
