package rest

import (
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) fail(c *gin.Context, err error) {
	e := fromServiceError(err)
	if e.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	abort(c, e)
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskListResponse(tasks))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c), services.CreateTaskInput{
		Text:       req.Text,
		Deadline:   req.Deadline.Value,
		RepeatDays: req.RepeatDays,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}

	in := services.UpdateTaskInput{
		Text:        req.Text,
		Completed:   req.Completed,
		DeadlineSet: req.Deadline.Set,
		Deadline:    req.Deadline.Value,
	}
	if req.RepeatDays != nil {
		in.RepeatDaysSet = true
		in.RepeatDays = *req.RepeatDays
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePerformance(c *gin.Context) {
	p, err := s.performance.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		if err := s.health(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
