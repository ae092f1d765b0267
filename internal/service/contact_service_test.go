package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository/memory"
)

func TestContactService_SubmitMessage(t *testing.T) {
	full := ContactInput{FullName: "Jane", Email: " Jane@Example.com ", Subject: "Hi", Message: "Hello there"}

	tests := []struct {
		name        string
		input       ContactInput
		createdBy   string
		expectedErr error
	}{
		{name: "guest", input: full},
		{name: "signed in", input: full, createdBy: model.NewID()},
		{name: "blank subject", input: ContactInput{FullName: "Jane", Email: "jane@example.com", Subject: "  ", Message: "x"}, expectedErr: apperr.ErrMissingFields},
		{name: "no email", input: ContactInput{FullName: "Jane", Subject: "Hi", Message: "x"}, expectedErr: apperr.ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContactService(memory.NewSet().Contacts)
			msg, err := svc.SubmitMessage(context.Background(), tt.input, tt.createdBy)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "jane@example.com", msg.Email)
			if tt.createdBy == "" {
				assert.Nil(t, msg.CreatedBy)
			} else {
				require.NotNil(t, msg.CreatedBy)
				assert.Equal(t, tt.createdBy, *msg.CreatedBy)
			}
		})
	}
}

func TestContactService_Admin(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(memory.NewSet().Contacts)

	first, err := svc.SubmitMessage(ctx, ContactInput{FullName: "A", Email: "a@example.com", Subject: "One", Message: "1"}, "")
	require.NoError(t, err)
	second, err := svc.SubmitMessage(ctx, ContactInput{FullName: "B", Email: "b@example.com", Subject: "Two", Message: "2"}, "")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)

	got, err := svc.GetMessage(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "One", got.Subject)

	require.NoError(t, svc.DeleteMessage(ctx, first.ID))
	_, err = svc.GetMessage(ctx, first.ID)
	assert.ErrorIs(t, err, apperr.ErrMessageNotFound)
	assert.ErrorIs(t, svc.DeleteMessage(ctx, first.ID), apperr.ErrMessageNotFound)
	_, err = svc.GetMessage(ctx, "bad")
	assert.ErrorIs(t, err, apperr.ErrInvalidID)
}
