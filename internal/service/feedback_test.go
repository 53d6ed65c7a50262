package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
)

func TestFeedbackSubmit(t *testing.T) {
	m := &capturingMailer{}
	svc := NewFeedbackService(m, "team@favouritebooks.example", testLogger)

	err := svc.Submit(context.Background(), FeedbackRequest{
		Name:    "Curious Reader",
		Email:   "reader@example.com",
		Content: "the genre filter is great",
	})
	require.NoError(t, err)

	sent := m.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "team@favouritebooks.example", sent[0].To)
	assert.Equal(t, "reader@example.com", sent[0].ReplyTo)
	assert.Equal(t, "Feedback from reader@example.com", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Curious Reader")
	assert.Contains(t, sent[0].Body, "the genre filter is great")
}

func TestFeedbackSubmitValidation(t *testing.T) {
	m := &capturingMailer{}
	svc := NewFeedbackService(m, "team@favouritebooks.example", testLogger)

	err := svc.Submit(context.Background(), FeedbackRequest{
		Name:    "No Address",
		Email:   "not-an-email",
		Content: "hello",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.Empty(t, m.sent())
}

func TestFeedbackSubmitDeliveryFailure(t *testing.T) {
	m := &capturingMailer{fail: errors.New("smtp unavailable")}
	svc := NewFeedbackService(m, "team@favouritebooks.example", testLogger)

	err := svc.Submit(context.Background(), FeedbackRequest{
		Name:    "Curious Reader",
		Email:   "reader@example.com",
		Content: "is anyone reading these?",
	})
	require.Error(t, err)
}
