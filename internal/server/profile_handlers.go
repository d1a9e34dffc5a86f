package server

import (
	"hiresynapse/internal/models"
	"hiresynapse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseKind resolves the :kind route segment, writing a 404 for unknown sections.
func parseKind(c *fiber.Ctx) (models.EntityKind, error) {
	kind, ok := models.ParseEntityKind(c.Params("kind"))
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: models.CodeNotFound, Message: "Unknown profile section"})
		return "", errResponseWritten
	}
	return kind, nil
}

// GetProfile handles GET /api/profile and returns the profile with its six ordered lists.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	in.UserID = currentUserID(c)

	profile, err := s.profileService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// ListProfileChildren handles GET /api/profile/:kind
func (s *Server) ListProfileChildren(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return nil
	}
	rows, err := s.profileService.ListChildren(c.UserContext(), currentUserID(c), kind)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rows)
}

// AddProfileChild handles POST /api/profile/:kind. A duplicate skill answers 200 with a
// warning instead of 201.
func (s *Server) AddProfileChild(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return nil
	}
	fields := service.Fields{}
	if err := parseBody(c, &fields); err != nil {
		return nil
	}

	res, err := s.profileService.AddChild(c.UserContext(), currentUserID(c), kind, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if res.Outcome == service.OutcomeDuplicateSkill {
		return c.JSON(fiber.Map{
			"outcome": res.Outcome,
			"warning": res.Warning,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(res.Child)
}

// GetProfileChild handles GET /api/profile/:kind/:id
func (s *Server) GetProfileChild(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	child, err := s.profileService.GetChild(c.UserContext(), currentUserID(c), kind, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(child)
}

// EditProfileChild handles PUT /api/profile/:kind/:id
func (s *Server) EditProfileChild(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	fields := service.Fields{}
	if err := parseBody(c, &fields); err != nil {
		return nil
	}

	child, err := s.profileService.EditChild(c.UserContext(), currentUserID(c), kind, id, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(child)
}

// DeleteProfileChild handles DELETE /api/profile/:kind/:id
func (s *Server) DeleteProfileChild(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.profileService.DeleteChild(c.UserContext(), currentUserID(c), kind, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
