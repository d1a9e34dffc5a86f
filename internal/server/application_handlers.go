package server

import (
	"hiresynapse/internal/repository"
	"hiresynapse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListApplications handles GET /api/applications?page=N
func (s *Server) ListApplications(c *fiber.Ctx) error {
	page := repository.Page{Number: c.QueryInt("page", 1), Size: c.QueryInt("page_size", 0)}
	res, err := s.applicationService.List(c.UserContext(), currentUserID(c), page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(res)
}

// CreateApplication handles POST /api/applications
func (s *Server) CreateApplication(c *fiber.Ctx) error {
	var in service.ApplicationInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	in.UserID = currentUserID(c)

	app, err := s.applicationService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplication handles GET /api/applications/:id
func (s *Server) GetApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	app, err := s.applicationService.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(app)
}

// UpdateApplication handles PUT /api/applications/:id
func (s *Server) UpdateApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var in service.ApplicationInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	in.UserID = currentUserID(c)

	app, err := s.applicationService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(app)
}

// DeleteApplication handles DELETE /api/applications/:id
func (s *Server) DeleteApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.applicationService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
