package services

import (
	"context"
	"testing"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupService_SendMessage_Empty(t *testing.T) {
	sim, _ := newTestSim(1)
	svc := NewSetupService(new(testutil.MockProjectRepo), sim)

	_, err := svc.SendMessage(context.Background(), uuid.New(), "   ", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestSetupService_ConversationProgresses(t *testing.T) {
	repo := new(testutil.MockProjectRepo)
	sim, fc := newTestSim(1)
	svc := NewSetupService(repo, sim)
	p := stubProject(t, repo)
	ctx := context.Background()

	files := []stages.ChatFile{{Name: "guidelines.pdf", Size: 2048}, {Name: "intents.csv", Size: 512}}
	ex, err := svc.SendMessage(ctx, p.ID, stages.SimplePrompt, files)
	require.NoError(t, err)
	assert.Equal(t, 0, ex.Index)
	assert.Empty(t, ex.Reply.Replies)

	fc.Step(stages.ReplyDelay)
	conv, err := svc.Conversation(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, conv, 1)
	require.Len(t, conv[0].Reply.Replies, 1)
	assert.True(t, conv[0].Reply.Replies[0].Typing)
	assert.Contains(t, conv[0].Reply.Replies[0].Content, "guidelines.pdf")

	fc.Step(stages.SetupChat(files).End())
	conv, err = svc.Conversation(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, conv[0].Reply.Done)
	assert.Len(t, conv[0].Reply.Replies, 3)
	assert.Equal(t, stages.ConfiguredProjectName, p.Name)
	assert.True(t, p.Setup[0].Applied)
}

func TestSetupService_StreamLatest_NoMessages(t *testing.T) {
	repo := new(testutil.MockProjectRepo)
	sim, _ := newTestSim(1)
	svc := NewSetupService(repo, sim)
	p := stubProject(t, repo)

	err := svc.StreamLatest(context.Background(), p.ID, func(*ExchangeView) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNoSimulation)
}

func TestSetupService_StreamLatest_Finished(t *testing.T) {
	repo := new(testutil.MockProjectRepo)
	sim, fc := newTestSim(1)
	svc := NewSetupService(repo, sim)
	p := stubProject(t, repo)

	_, err := svc.SendMessage(context.Background(), p.ID, "hello", nil)
	require.NoError(t, err)
	fc.Step(time.Minute)

	var frames []*ExchangeView
	err = svc.StreamLatest(context.Background(), p.ID, func(v *ExchangeView) error {
		frames = append(frames, v)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Reply.Done)
	assert.Equal(t, "hello", frames[0].Message)
}
