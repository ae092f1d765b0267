package service

import (
	"context"
	"fmt"
	"strings"

	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// ContactInput is a contact form submission.
type ContactInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// ContactService stores messages from the contact form.
type ContactService interface {
	SubmitMessage(ctx context.Context, input ContactInput, createdBy string) (*model.ContactMessage, error)
	ListMessages(ctx context.Context) ([]model.ContactMessage, error)
	GetMessage(ctx context.Context, id string) (*model.ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

// SubmitMessage stores a message. createdBy is the sender's user id, or empty for guests.
func (s *contactService) SubmitMessage(ctx context.Context, input ContactInput, createdBy string) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		FullName: strings.TrimSpace(input.FullName),
		Email:    normalizeEmail(input.Email),
		Subject:  strings.TrimSpace(input.Subject),
		Message:  strings.TrimSpace(input.Message),
	}
	if msg.FullName == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, apperr.ErrMissingFields
	}
	if createdBy != "" {
		msg.CreatedBy = &createdBy
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context) ([]model.ContactMessage, error) {
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (s *contactService) GetMessage(ctx context.Context, id string) (*model.ContactMessage, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperr.ErrMessageNotFound)
	}
	return msg, nil
}

func (s *contactService) DeleteMessage(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, apperr.ErrMessageNotFound)
	}
	return nil
}
