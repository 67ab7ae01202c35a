package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymunity/backend/news"
)

func (s *Server) adminListSources(c *gin.Context) {
	sources, err := s.news.ListAllSources()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) adminCreateSource(c *gin.Context) {
	var payload news.SourceCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	source, err := s.news.CreateSource(payload)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, source)
}

func (s *Server) adminUpdateSource(c *gin.Context) {
	sourceID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "source: not found"})
		return
	}
	var payload news.SourceUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	source, err := s.news.UpdateSource(sourceID, payload)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, source)
}

func (s *Server) adminToggleSource(c *gin.Context) {
	sourceID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "source: not found"})
		return
	}

	source, err := s.news.ToggleSource(sourceID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, source)
}

func (s *Server) adminDeleteSource(c *gin.Context) {
	sourceID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "source: not found"})
		return
	}

	if err := s.news.DeleteSource(sourceID); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) adminFetchNow(c *gin.Context) {
	report, err := s.news.FetchNow()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) adminStatus(c *gin.Context) {
	report, err := s.news.Status()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
