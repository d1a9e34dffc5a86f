package server

import (
	"hiresynapse/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) ListCoverLetters(c *fiber.Ctx) error {
	letters, err := s.coverLetterService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(letters)
}

func (s *Server) CreateCoverLetter(c *fiber.Ctx) error {
	var in service.CoverLetterInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	in.UserID = currentUserID(c)

	letter, err := s.coverLetterService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(letter)
}

func (s *Server) GetCoverLetter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	letter, err := s.coverLetterService.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(letter)
}

func (s *Server) UpdateCoverLetter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var in service.CoverLetterInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	in.UserID = currentUserID(c)

	letter, err := s.coverLetterService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(letter)
}

func (s *Server) DeleteCoverLetter(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.coverLetterService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
