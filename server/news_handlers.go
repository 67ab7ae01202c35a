package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymunity/backend/news"
	"github.com/gymunity/backend/server/middlewares"
)

func (s *Server) listSources(c *gin.Context) {
	sources, err := s.news.ListEnabledSources()
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (s *Server) getPreferences(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	prefs, err := s.news.GetPreferences(user.Id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) updatePreferences(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	var payload news.PreferencesIn
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if payload.Level == "" {
		payload.Level = "beginner"
	}
	if payload.Equipment == "" {
		payload.Equipment = "gym"
	}

	prefs, err := s.news.UpdatePreferences(user.Id, payload)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// feedQueryFromRequest reads the shared feed/explore query parameters.
func feedQueryFromRequest(c *gin.Context) news.FeedQuery {
	return news.FeedQuery{
		Topic:    c.Query("topic"),
		Source:   c.Query("source"),
		Query:    c.Query("q"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", news.DefaultPageSize),
	}
}

func (s *Server) getFeed(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	page, err := s.news.GetFeed(user.Id, feedQueryFromRequest(c))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getExplore(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	page, err := s.news.GetExplore(user.Id, feedQueryFromRequest(c))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getSaved(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	page, err := s.news.GetSaved(user.Id, queryInt(c, "page", 1), queryInt(c, "page_size", news.DefaultPageSize))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getArticle(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	articleID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "article: not found"})
		return
	}

	article, err := s.news.GetArticle(user.Id, articleID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) saveArticle(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	articleID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "article: not found"})
		return
	}

	status, err := s.news.SaveArticle(user.Id, articleID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": status})
}

func (s *Server) unsaveArticle(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	articleID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "article: not found"})
		return
	}

	status, err := s.news.UnsaveArticle(user.Id, articleID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) hideArticle(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	articleID, err := pathId(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "article: not found"})
		return
	}

	status, err := s.news.HideArticle(user.Id, articleID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": status})
}
