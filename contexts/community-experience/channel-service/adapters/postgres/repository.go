package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "parley/contexts/community-experience/channel-service/domain/errors"
	"parley/contexts/community-experience/channel-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertChannel writes the channel row and the owner's membership row in one
// transaction: the owner-is-member invariant holds from the moment the
// channel becomes visible.
func (r *Repository) InsertChannel(ctx context.Context, input ports.CreateChannelInput) (ports.Channel, error) {
	row := channelModel{
		ID:        input.ChannelID,
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		CreatedAt: input.CreatedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&membershipModel{
			UserID:    input.OwnerID,
			ChannelID: input.ChannelID,
			CreatedAt: input.CreatedAt.UTC(),
		}).Error
	})
	if err != nil {
		return ports.Channel{}, r.logError("channel_repo_insert_channel_failed", err,
			"channel_id", input.ChannelID,
			"owner_id", input.OwnerID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) FindChannelByID(ctx context.Context, channelID string) (ports.Channel, error) {
	var row channelModel
	err := r.db.WithContext(ctx).
		Where("id = ?", channelID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Channel{}, domainerrors.ErrChannelNotFound
		}
		return ports.Channel{}, r.logError("channel_repo_find_channel_failed", err, "channel_id", channelID)
	}
	return row.toEntity(), nil
}

// DeleteChannelCascade removes dependent messages and memberships before the
// channel row, all inside one transaction, so concurrent readers observe
// either the full channel or none of it.
func (r *Repository) DeleteChannelCascade(ctx context.Context, channelID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", channelID).Delete(&messageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("channel_id = ?", channelID).Delete(&membershipModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", channelID).Delete(&channelModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrChannelNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrChannelNotFound) {
			return err
		}
		return r.logError("channel_repo_delete_cascade_failed", err, "channel_id", channelID)
	}
	return nil
}

func (r *Repository) InsertMembership(ctx context.Context, userID string, channelID string, now time.Time) (ports.Membership, error) {
	row := membershipModel{
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: now.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Membership{}, domainerrors.ErrAlreadySubscribed
		}
		return ports.Membership{}, r.logError("channel_repo_insert_membership_failed", err,
			"channel_id", channelID,
			"user_id", userID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) FindMembership(ctx context.Context, userID string, channelID string) (ports.Membership, bool, error) {
	var row membershipModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Membership{}, false, nil
		}
		return ports.Membership{}, false, r.logError("channel_repo_find_membership_failed", err,
			"channel_id", channelID,
			"user_id", userID,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) InsertMessage(ctx context.Context, input ports.CreateMessageInput) (ports.Message, error) {
	row := messageModel{
		ID:        input.MessageID,
		ChannelID: input.ChannelID,
		AuthorID:  input.AuthorID,
		Content:   input.Content,
		CreatedAt: input.CreatedAt.UTC(),
		UpdatedAt: input.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Message{}, r.logError("channel_repo_insert_message_failed", err,
			"channel_id", input.ChannelID,
			"message_id", input.MessageID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) FindMessage(ctx context.Context, messageID string, channelID string) (ports.Message, error) {
	var row messageModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND channel_id = ?", messageID, channelID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Message{}, domainerrors.ErrMessageNotFound
		}
		return ports.Message{}, r.logError("channel_repo_find_message_failed", err,
			"channel_id", channelID,
			"message_id", messageID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateMessageContent(ctx context.Context, messageID string, content string, now time.Time) (ports.Message, error) {
	result := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("id = ?", messageID).
		Updates(map[string]any{
			"content":    content,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return ports.Message{}, r.logError("channel_repo_update_message_failed", result.Error, "message_id", messageID)
	}
	if result.RowsAffected == 0 {
		return ports.Message{}, domainerrors.ErrMessageNotFound
	}

	var row messageModel
	if err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&row).Error; err != nil {
		return ports.Message{}, r.logError("channel_repo_reload_message_failed", err, "message_id", messageID)
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteMessage(ctx context.Context, messageID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", messageID).Delete(&messageModel{})
	if result.Error != nil {
		return r.logError("channel_repo_delete_message_failed", result.Error, "message_id", messageID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMessageNotFound
	}
	return nil
}

func (r *Repository) ListMessagesByChannel(ctx context.Context, channelID string) ([]ports.ChannelMessage, error) {
	var rows []channelMessageRow
	err := r.db.WithContext(ctx).
		Table("messages").
		Select("messages.id, messages.channel_id, messages.author_id, messages.content, messages.created_at, messages.updated_at, users.name AS author_name").
		Joins("JOIN users ON users.id = messages.author_id").
		Where("messages.channel_id = ?", channelID).
		Order("messages.created_at ASC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("channel_repo_list_messages_failed", err, "channel_id", channelID)
	}

	items := make([]ports.ChannelMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-experience/channel-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("channel repository operation failed", fields...)
	return err
}

type channelModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	OwnerID   string    `gorm:"column:owner_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (channelModel) TableName() string {
	return "channels"
}

func (m channelModel) toEntity() ports.Channel {
	return ports.Channel{
		ChannelID: m.ID,
		Name:      m.Name,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type membershipModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	ChannelID string    `gorm:"column:channel_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (membershipModel) TableName() string {
	return "user_channels"
}

func (m membershipModel) toEntity() ports.Membership {
	return ports.Membership{
		UserID:    m.UserID,
		ChannelID: m.ChannelID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type messageModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ChannelID string    `gorm:"column:channel_id"`
	AuthorID  string    `gorm:"column:author_id"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (messageModel) TableName() string {
	return "messages"
}

func (m messageModel) toEntity() ports.Message {
	return ports.Message{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type channelMessageRow struct {
	ID         string    `gorm:"column:id"`
	ChannelID  string    `gorm:"column:channel_id"`
	AuthorID   string    `gorm:"column:author_id"`
	Content    string    `gorm:"column:content"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
	AuthorName string    `gorm:"column:author_name"`
}

func (m channelMessageRow) toEntity() ports.ChannelMessage {
	return ports.ChannelMessage{
		Message: ports.Message{
			MessageID: m.ID,
			ChannelID: m.ChannelID,
			AuthorID:  m.AuthorID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC(),
			UpdatedAt: m.UpdatedAt.UTC(),
		},
		AuthorName: m.AuthorName,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
