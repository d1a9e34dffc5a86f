package server

import (
	"hiresynapse/internal/models"
	"hiresynapse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchJobs handles GET /api/jobs?q=&page=
func (s *Server) SearchJobs(c *fiber.Ctx) error {
	res, err := s.jobService.Search(c.UserContext(), c.Query("q"), c.QueryInt("page", 1))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(res)
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	posting, err := s.jobService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posting)
}

// GetInterviewQuestions handles GET /api/interview-questions?category=
func (s *Server) GetInterviewQuestions(c *fiber.Ctx) error {
	groups, err := s.interviewService.Grouped(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(groups)
}

// IngestJobs handles POST /api/admin/jobs/ingest. With a task queue the batch is enqueued and
// 202 returned; without one it is ingested before responding.
func (s *Server) IngestJobs(c *fiber.Ctx) error {
	var req struct {
		Postings []service.IngestPosting `json:"postings"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if len(req.Postings) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string]string{"postings": "This field is required."}))
	}

	if s.ingestQueue != nil {
		taskID, err := s.ingestQueue.EnqueueIngest(c.UserContext(), req.Postings, currentUserID(c))
		if err != nil {
			return respondServiceError(c, models.NewInternalError(err))
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"task_id": taskID})
	}

	report, err := s.jobService.Ingest(c.UserContext(), req.Postings)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// DeleteJob handles DELETE /api/admin/jobs/:id. Linked applications are kept and unlinked.
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.jobService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
