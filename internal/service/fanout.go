package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SchoolApp/content-service/internal/directory"
	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/rabbitmq"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/SchoolApp/content-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DEFAULT_MAX_MESSAGE_LEN = 160

type fanoutService struct {
	logger       *zap.Logger
	repo         *repository.Repository
	rdb          *redis.Client
	resolver     *directory.Resolver
	mq           *rabbitmq.MQConn
	conns        *sync.Map
	deliveryChan chan model.NotificationDelivery
	maxMsgLen    int
}

func newFanoutService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, resolver *directory.Resolver, mq *rabbitmq.MQConn) Fanout {
	maxLen := viper.GetInt("notifications.max_message_length")
	if maxLen <= 0 {
		maxLen = DEFAULT_MAX_MESSAGE_LEN
	}

	s := &fanoutService{
		logger:       logger,
		repo:         repo,
		rdb:          rdb,
		resolver:     resolver,
		mq:           mq,
		conns:        &sync.Map{},
		deliveryChan: make(chan model.NotificationDelivery, 1000),
		maxMsgLen:    maxLen,
	}

	for range 5 {
		go s.deliveryWorker()
	}

	return s
}

// FanoutItem resolves the item's audience and writes one notification per
// recipient. Calling it twice for the same item duplicates notifications;
// callers invoke it exactly once, at posting time.
func (s *fanoutService) FanoutItem(ctx context.Context, item model.ContentItem) (int, error) {
	recipients, err := s.resolver.Resolve(ctx, item.Audience)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(recipients))
	for _, recipient := range recipients {
		ids = append(ids, recipient.ID)
	}

	itemID := item.ID
	return s.FanoutToRecipients(ctx, ids, item.Kind, item.Title, item.Body, &itemID)
}

// FanoutToRecipients writes per-recipient records independently: one failed
// write never blocks or rolls back the others. It returns how many writes
// succeeded and errors only when every write failed.
func (s *fanoutService) FanoutToRecipients(ctx context.Context, recipients []uuid.UUID, category, title, body string, sourceItemID *uuid.UUID) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	message := truncate(body, s.maxMsgLen)
	now := time.Now()

	created := 0
	var failures error
	for _, recipientID := range recipients {
		n := model.NotificationRecord{
			RecipientID:  recipientID,
			Title:        title,
			Message:      message,
			Category:     category,
			SourceItemID: sourceItemID,
			CreatedAt:    now,
		}
		if err := s.repo.Postgres.Notification.Create(ctx, n); err != nil {
			s.logger.Sugar().Errorf("failed to create notification for recipient(%s): %s", recipientID.String(), err.Error())
			failures = multierr.Append(failures, fmt.Errorf("recipient %s: %w", recipientID, err))
			continue
		}
		created++

		s.invalidateFeedCache(ctx, recipientID)

		s.deliveryChan <- model.NotificationDelivery{
			RecipientID: recipientID,
			Category:    category,
			Title:       title,
			Message:     message,
		}
	}

	if created == 0 {
		return 0, fmt.Errorf("%w: %v", ErrStoreWriteFailed, failures)
	}
	return created, nil
}

func (s *fanoutService) invalidateFeedCache(ctx context.Context, recipientID uuid.UUID) {
	if err := redisrepo.DeleteByPattern(s.rdb, ctx, redisrepo.RecipientFeedPattern(recipientID.String())); err != nil {
		s.logger.Sugar().Warnf("failed to invalidate recipient(%s)'s feed cache: %s", recipientID.String(), err.Error())
	}
}

// truncate bounds the display message, ellipsis included, to maxLen runes.
func truncate(body string, maxLen int) string {
	runes := []rune(body)
	if len(runes) <= maxLen {
		return body
	}
	return string(runes[:maxLen-1]) + "…"
}

func (s *fanoutService) deliveryWorker() {
	for msg := range s.deliveryChan {
		val, ok := s.conns.Load(msg.RecipientID)
		if !ok {
			continue
		}

		conn, ok := val.(*websocket.Conn)
		if !ok {
			continue
		}

		payload := map[string]string{
			"category": msg.Category,
			"title":    msg.Title,
			"message":  msg.Message,
		}
		if err := conn.WriteJSON(payload); err != nil {
			s.logger.Sugar().Errorf("failed to write json msg to recipient(%s)'s conn: %s", msg.RecipientID.String(), err.Error())
		}
	}
}

func (s *fanoutService) RegisterConnection(userID uuid.UUID, conn *websocket.Conn) {
	s.conns.Store(userID, conn)

	go func(userID uuid.UUID, c *websocket.Conn) {
		for {
			_, _, err := c.ReadMessage()
			if err != nil {
				s.UnregisterConnection(userID)
				break
			}
		}
	}(userID, conn)
}

func (s *fanoutService) UnregisterConnection(userID uuid.UUID) {
	if val, ok := s.conns.Load(userID); ok {
		if conn, ok := val.(*websocket.Conn); ok {
			conn.Close()
		}
		s.conns.Delete(userID)
	}
}

// StartProcessingClassroomAdditions consumes placement events from the
// classroom module and fans a classroom_addition notification out to the
// affected parents.
func (s *fanoutService) StartProcessingClassroomAdditions(ctx context.Context) {
	msgs, err := s.mq.Consume(rabbitmq.CLASSROOM_ADDITIONS_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var addition dto.MQClassroomAddition
		if err := json.Unmarshal(msg.Body, &addition); err != nil {
			msg.Ack(false)
			continue
		}

		title := fmt.Sprintf("%s joined %s", addition.StudentName, addition.ClassroomName)
		body := fmt.Sprintf("%s has been added to classroom %s.", addition.StudentName, addition.ClassroomName)

		if _, err := s.FanoutToRecipients(ctx, addition.ParentIDs, model.CategoryClassroomAddition, title, body, nil); err != nil {
			s.logger.Sugar().Errorf("failed to fan out classroom addition for %q: %s", addition.ClassroomName, err.Error())
			msg.Ack(false)
			continue
		}

		msg.Ack(false)
	}
}
