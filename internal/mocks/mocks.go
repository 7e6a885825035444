package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"jobboard-service/internal/models"
)

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID, recruiterID int, jobApplicationID *int) (models.Conversation, bool, error) {
	args := m.Called(ctx, jobPostingID, jobSeekerID, recruiterID, jobApplicationID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Bool(1), args.Error(2)
}

func (m *ConversationRepositoryMock) GetByID(ctx context.Context, conversationID int) (models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	var conv models.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(models.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) GetContext(ctx context.Context, conversationID int) (models.ConversationContext, error) {
	args := m.Called(ctx, conversationID)
	var cc models.ConversationContext
	if val := args.Get(0); val != nil {
		cc = val.(models.ConversationContext)
	}
	return cc, args.Error(1)
}

func (m *ConversationRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	var list []models.Conversation
	if val := args.Get(0); val != nil {
		list = val.([]models.Conversation)
	}
	return list, args.Error(1)
}

func (m *ConversationRepositoryMock) IsParticipant(ctx context.Context, conversationID, userID int) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ConversationRepositoryMock) UpdateLastMessage(ctx context.Context, conversationID, messageID int) error {
	args := m.Called(ctx, conversationID, messageID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Insert(ctx context.Context, conversationID, senderID int, body string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, body)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	var list []models.Message
	if val := args.Get(0); val != nil {
		list = val.([]models.Message)
	}
	return list, args.Error(1)
}

func (m *MessageRepositoryMock) GetByID(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

type BlockRepositoryMock struct {
	mock.Mock
}

func (m *BlockRepositoryMock) IsBlockedBetween(ctx context.Context, userA, userB int) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *BlockRepositoryMock) Create(ctx context.Context, blockerID, blockedID int, reason *string) (models.ContactBlock, error) {
	args := m.Called(ctx, blockerID, blockedID, reason)
	var block models.ContactBlock
	if val := args.Get(0); val != nil {
		block = val.(models.ContactBlock)
	}
	return block, args.Error(1)
}

func (m *BlockRepositoryMock) Revoke(ctx context.Context, blockID, blockerID int) error {
	args := m.Called(ctx, blockID, blockerID)
	return args.Error(0)
}

type JobPostingRepositoryMock struct {
	mock.Mock
}

func (m *JobPostingRepositoryMock) Create(ctx context.Context, companyID int, title, status string, expiresAt *time.Time) (models.JobPosting, error) {
	args := m.Called(ctx, companyID, title, status, expiresAt)
	var posting models.JobPosting
	if val := args.Get(0); val != nil {
		posting = val.(models.JobPosting)
	}
	return posting, args.Error(1)
}

func (m *JobPostingRepositoryMock) GetByID(ctx context.Context, postingID int) (models.JobPosting, error) {
	args := m.Called(ctx, postingID)
	var posting models.JobPosting
	if val := args.Get(0); val != nil {
		posting = val.(models.JobPosting)
	}
	return posting, args.Error(1)
}

func (m *JobPostingRepositoryMock) Update(ctx context.Context, postingID int, title, status *string, expiresAt *time.Time) (models.JobPosting, error) {
	args := m.Called(ctx, postingID, title, status, expiresAt)
	var posting models.JobPosting
	if val := args.Get(0); val != nil {
		posting = val.(models.JobPosting)
	}
	return posting, args.Error(1)
}

func (m *JobPostingRepositoryMock) Delete(ctx context.Context, postingID int) error {
	args := m.Called(ctx, postingID)
	return args.Error(0)
}

func (m *JobPostingRepositoryMock) ListOpen(ctx context.Context) ([]models.JobPosting, error) {
	args := m.Called(ctx)
	var list []models.JobPosting
	if val := args.Get(0); val != nil {
		list = val.([]models.JobPosting)
	}
	return list, args.Error(1)
}

type ApplicationRepositoryMock struct {
	mock.Mock
}

func (m *ApplicationRepositoryMock) CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID int) (models.JobApplication, bool, error) {
	args := m.Called(ctx, jobPostingID, jobSeekerID)
	var app models.JobApplication
	if val := args.Get(0); val != nil {
		app = val.(models.JobApplication)
	}
	return app, args.Bool(1), args.Error(2)
}

func (m *ApplicationRepositoryMock) GetByID(ctx context.Context, applicationID int) (models.JobApplication, error) {
	args := m.Called(ctx, applicationID)
	var app models.JobApplication
	if val := args.Get(0); val != nil {
		app = val.(models.JobApplication)
	}
	return app, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, fullName *string, email, role string, isActive bool) (models.User, error) {
	args := m.Called(ctx, fullName, email, role, isActive)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}
